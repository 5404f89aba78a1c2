package model

import (
	"fmt"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func numberedTable(n int) domain.FeatureTable {
	t := domain.FeatureTable{Columns: []string{"x"}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, domain.FeatureRow{
			TxnID:  domain.TxnID(fmt.Sprintf("T%d", i)),
			Label:  domain.Label(fmt.Sprint(i % 2)),
			Values: []float64{float64(i)},
		})
	}
	return t
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		ratio     float64
		trainRows int
		testRows  int
	}{
		{name: "Twenty percent of ten rows", rows: 10, ratio: 0.2, trainRows: 8, testRows: 2},
		{name: "Rounds the test side up", rows: 11, ratio: 0.2, trainRows: 8, testRows: 3},
		{name: "Two rows keep one on each side", rows: 2, ratio: 0.2, trainRows: 1, testRows: 1},
		{name: "Large ratio still leaves a training row", rows: 3, ratio: 0.99, trainRows: 1, testRows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			table := numberedTable(tt.rows)

			train, test, err := Split(table, tt.ratio, 42)

			req.NoError(err)
			req.Equal(tt.trainRows, train.Len())
			req.Equal(tt.testRows, test.Len())
			req.Equal(table.Columns, train.Columns)
			req.Equal(table.Columns, test.Columns)
			req.ElementsMatch(table.IDs(), append(train.IDs(), test.IDs()...))
		})
	}
}

func TestSplit_Deterministic(t *testing.T) {
	req := require.New(t)
	table := numberedTable(25)

	train1, test1, err := Split(table, 0.2, 42)
	req.NoError(err)
	train2, test2, err := Split(table, 0.2, 42)
	req.NoError(err)

	req.Equal(train1, train2)
	req.Equal(test1, test2)
}

func TestSplit_Errors(t *testing.T) {
	req := require.New(t)

	_, _, err := Split(numberedTable(1), 0.2, 42)
	req.ErrorIs(err, errors.ErrEmptyTable)

	_, _, err = Split(numberedTable(5), 0, 42)
	req.ErrorIs(err, errors.ErrInvalidConfig)

	_, _, err = Split(numberedTable(5), 1, 42)
	req.ErrorIs(err, errors.ErrInvalidConfig)
}
