// Package model fits and evaluates a binary classifier on the joined feature table.
package model

import (
	"fmt"
	"math"
	"math/rand"
	"polarity-lab/domain"
	"polarity-lab/errors"
)

// Split shuffles the rows with a seeded permutation and puts ceil(n*testRatio) of them in
// the test table, clamped so that neither side is empty. Both tables keep the columns.
func Split(table domain.FeatureTable, testRatio float64, seed int64) (domain.FeatureTable, domain.FeatureTable, error) {
	n := table.Len()
	if n < 2 {
		return domain.FeatureTable{}, domain.FeatureTable{}, fmt.Errorf("%w: %d rows, need at least 2 to split", errors.ErrEmptyTable, n)
	}
	if testRatio <= 0 || testRatio >= 1 {
		return domain.FeatureTable{}, domain.FeatureTable{}, fmt.Errorf("%w: test ratio %v not in (0, 1)", errors.ErrInvalidConfig, testRatio)
	}

	nTest := int(math.Ceil(float64(n) * testRatio))
	nTest = max(1, min(nTest, n-1))

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test := domain.FeatureTable{Columns: table.Columns, Rows: make([]domain.FeatureRow, 0, nTest)}
	train := domain.FeatureTable{Columns: table.Columns, Rows: make([]domain.FeatureRow, 0, n-nTest)}
	for i, p := range perm {
		if i < nTest {
			test.Rows = append(test.Rows, table.Rows[p])
			continue
		}
		train.Rows = append(train.Rows, table.Rows[p])
	}
	return train, test, nil
}
