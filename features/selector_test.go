package features

import (
	"polarity-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChi2(t *testing.T) {
	req := require.New(t)
	m := denseMatrix([][]float64{
		{2, 1},
		{0, 1},
		{0, 1},
		{0, 1},
	})

	scores, pvalues := Chi2(m, labelsOf("a", "b", "b", "b"))

	// Column 0: observed (2, 0), expected (0.5, 1.5)
	req.InDelta(6.0, scores[0], 1e-12)
	req.InDelta(0.014306, pvalues[0], 1e-5)
	// Column 1 is spread exactly like the labels
	req.InDelta(0.0, scores[1], 1e-12)
	req.InDelta(1.0, pvalues[1], 1e-12)
}

func TestChi2_DegenerateColumns(t *testing.T) {
	req := require.New(t)

	// Given an all-zero column
	scores, pvalues := Chi2(denseMatrix([][]float64{{0, 1}, {0, 2}}), labelsOf("a", "b"))
	req.Equal(0.0, scores[0])
	req.Equal(1.0, pvalues[0])

	// Given a single class, nothing depends on the label
	scores, pvalues = Chi2(denseMatrix([][]float64{{1, 3}, {2, 0}}), labelsOf("x", "x"))
	req.Equal([]float64{0, 0}, scores)
	req.Equal([]float64{1, 1}, pvalues)
}

func TestSelector_Select(t *testing.T) {
	m := denseMatrix([][]float64{
		{1, 0, 3, 1},
		{1, 2, 0, 1},
		{0, 0, 3, 1},
		{1, 2, 0, 1},
	})
	vocab := vocabularyOf("alpha", "beta", "delta", "gamma")
	labels := labelsOf("pos", "neg", "pos", "neg")

	tests := []struct {
		name     string
		k        int
		expected []string
	}{
		{name: "Keeps the k best columns in vocabulary order", k: 2, expected: []string{"beta", "delta"}},
		{name: "Keeps everything when k exceeds the width", k: 10, expected: []string{"alpha", "beta", "delta", "gamma"}},
		{name: "Keeps nothing when k is zero", k: 0, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			sel, err := NewSelector(tt.k).Select(m, vocab, labels)

			req.NoError(err)
			req.Equal(tt.expected, sel.Terms)
			req.LessOrEqual(sel.Len(), tt.k)
			req.Len(sel.Scores, sel.Len())
			req.Len(sel.PValues, sel.Len())
			for p := 1; p < sel.Len(); p++ {
				req.Less(sel.Columns[p-1], sel.Columns[p])
			}
		})
	}
}

func TestSelector_TiesPreferLowerColumn(t *testing.T) {
	req := require.New(t)
	m := denseMatrix([][]float64{
		{1, 1, 1},
		{0, 0, 0},
	})

	sel, err := NewSelector(1).Select(m, vocabularyOf("c", "a", "b"), labelsOf("1", "0"))

	req.NoError(err)
	req.Equal([]int{0}, sel.Columns)
	req.Equal([]string{"c"}, sel.Terms)
}

func TestSelector_Errors(t *testing.T) {
	req := require.New(t)
	m := denseMatrix([][]float64{{1, 0}, {0, 1}})

	// Given fewer labels than rows
	_, err := NewSelector(1).Select(m, vocabularyOf("a", "b"), labelsOf("1"))
	req.ErrorIs(err, errors.ErrLabelMismatch)

	// Given a vocabulary that does not match the matrix
	_, err = NewSelector(1).Select(m, vocabularyOf("a"), labelsOf("1", "0"))
	req.ErrorIs(err, errors.ErrLabelMismatch)
}

func TestSelector_ZeroWidth(t *testing.T) {
	req := require.New(t)

	sel, err := NewSelector(5).Select(Matrix{rows: 3}, Vocabulary{}, labelsOf("1", "0", "1"))

	req.NoError(err)
	req.Zero(sel.Len())
}
