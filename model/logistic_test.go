package model

import (
	"math"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func labelled(rows ...domain.FeatureRow) domain.FeatureTable {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0].Values)
	}
	columns := make([]string, width)
	for j := range columns {
		columns[j] = string(rune('a' + j))
	}
	return domain.FeatureTable{Columns: columns, Rows: rows}
}

func r(label string, values ...float64) domain.FeatureRow {
	return domain.FeatureRow{TxnID: "T", Label: domain.Label(label), Values: values}
}

func TestLogisticRegression_Separable(t *testing.T) {
	req := require.New(t)
	table := labelled(r("neg", 0), r("neg", 1), r("pos", 3), r("pos", 4))
	m := NewLogisticRegression(1)

	err := m.Fit(table)

	req.NoError(err)
	req.Equal([]domain.Label{"neg", "pos"}, m.Classes())
	weights, _ := m.Coefficients()
	req.Greater(weights[0], 0.0)

	// Symmetric data puts the boundary halfway between the classes
	req.InDelta(0.5, m.Probability([]float64{2}), 1e-3)
	req.Equal(domain.Label("neg"), m.Predict([]float64{0.5}))
	req.Equal(domain.Label("pos"), m.Predict([]float64{3.5}))

	acc, err := m.Accuracy(table)
	req.NoError(err)
	req.Equal(1.0, acc)
}

func TestLogisticRegression_Regularized(t *testing.T) {
	req := require.New(t)
	table := labelled(r("0", 0, 1), r("0", 0, 2), r("1", 1, 1), r("1", 1, 2))

	strong := NewLogisticRegression(0.01)
	weak := NewLogisticRegression(100)
	req.NoError(strong.Fit(table))
	req.NoError(weak.Fit(table))

	// A smaller C shrinks the weights
	ws, _ := strong.Coefficients()
	ww, _ := weak.Coefficients()
	req.Less(math.Abs(ws[0]), math.Abs(ww[0]))
	// The second column carries no signal
	req.InDelta(0.0, ws[1], 1e-3)
}

func TestLogisticRegression_Errors(t *testing.T) {
	tests := []struct {
		name     string
		table    domain.FeatureTable
		expected error
	}{
		{name: "Empty table", table: labelled(), expected: errors.ErrEmptyTable},
		{name: "No columns", table: labelled(r("0"), r("1")), expected: errors.ErrNoFeatureColumns},
		{name: "One label", table: labelled(r("0", 1), r("0", 2)), expected: errors.ErrNotBinary},
		{name: "Three labels", table: labelled(r("0", 1), r("1", 2), r("2", 3)), expected: errors.ErrNotBinary},
		{name: "Missing value", table: labelled(r("0", 1), r("1", math.NaN())), expected: errors.ErrMissingValues},
		{name: "Ragged row", table: labelled(r("0", 1), r("1", 2, 3)), expected: errors.ErrMissingValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			err := NewLogisticRegression(1).Fit(tt.table)

			req.ErrorIs(err, tt.expected)
		})
	}
}

func TestLogisticRegression_AccuracyErrors(t *testing.T) {
	req := require.New(t)
	m := NewLogisticRegression(1)

	// Given an unfitted model
	_, err := m.Accuracy(labelled(r("0", 1)))
	req.ErrorIs(err, errors.ErrEmptyTable)

	req.NoError(m.Fit(labelled(r("0", 0), r("1", 1))))

	// Given a table of another width
	_, err = m.Accuracy(labelled(r("0", 1, 2)))
	req.ErrorIs(err, errors.ErrLabelMismatch)

	// Given nothing to evaluate
	_, err = m.Accuracy(domain.FeatureTable{Columns: []string{"a"}})
	req.ErrorIs(err, errors.ErrEmptyTable)
}
