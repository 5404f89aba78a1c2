package features

import (
	"polarity-lab/domain"

	"github.com/james-bowman/sparse"
)

// denseMatrix builds a Matrix from literal rows.
func denseMatrix(rows [][]float64) Matrix {
	if len(rows) == 0 || len(rows[0]) == 0 {
		width := 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
		return Matrix{rows: len(rows), cols: width}
	}
	dok := sparse.NewDOK(len(rows), len(rows[0]))
	for i, r := range rows {
		for j, v := range r {
			if v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	return Matrix{rows: len(rows), cols: len(rows[0]), csr: dok.ToCSR()}
}

func labelsOf(values ...string) []domain.Label {
	out := make([]domain.Label, len(values))
	for i, v := range values {
		out[i] = domain.Label(v)
	}
	return out
}

func vocabularyOf(terms ...string) Vocabulary {
	df := make(map[string]int, len(terms))
	for _, t := range terms {
		df[t] = 1
	}
	return newVocabulary(terms, df)
}
