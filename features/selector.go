package features

import (
	"fmt"
	"math"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Selection is the ordered subset of vocabulary columns kept after chi-square ranking.
// Columns are ascending, so Terms follow vocabulary order.
type Selection struct {
	Columns []int
	Terms   []string
	Scores  []float64
	PValues []float64
}

func (s Selection) Len() int {
	return len(s.Columns)
}

// Selector keeps the k columns most dependent on the label.
type Selector struct {
	k int
}

func NewSelector(k int) Selector {
	return Selector{k: k}
}

// Select ranks every column by its chi-square statistic against the labels (descending,
// column index ascending on ties) and keeps min(k, columns) of them.
// labels must be the training labels aligned row for row with the matrix.
func (s Selector) Select(m Matrix, vocab Vocabulary, labels []domain.Label) (Selection, error) {
	rows, cols := m.Dims()
	if len(labels) != rows {
		return Selection{}, fmt.Errorf("%w: %d labels for %d rows", errors.ErrLabelMismatch, len(labels), rows)
	}
	if cols != vocab.Len() {
		return Selection{}, fmt.Errorf("%w: matrix has %d columns, vocabulary %d terms", errors.ErrLabelMismatch, cols, vocab.Len())
	}
	if cols == 0 || s.k <= 0 {
		return Selection{}, nil
	}

	scores, pvalues := Chi2(m, labels)
	order := make([]int, cols)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	picked := append([]int(nil), order[:min(s.k, cols)]...)
	sort.Ints(picked)

	sel := Selection{
		Columns: picked,
		Terms:   make([]string, len(picked)),
		Scores:  make([]float64, len(picked)),
		PValues: make([]float64, len(picked)),
	}
	for p, j := range picked {
		sel.Terms[p] = vocab.Terms[j]
		sel.Scores[p] = scores[j]
		sel.PValues[p] = pvalues[j]
	}
	return sel, nil
}

// Chi2 computes, for every column, the chi-square statistic between the per-class sums of
// the column and the sums expected if the column were independent of the label, together
// with its p-value. Columns that are zero everywhere score 0 with p-value 1.
func Chi2(m Matrix, labels []domain.Label) ([]float64, []float64) {
	rows, cols := m.Dims()
	classes := lo.Uniq(labels)
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	classIdx := make(map[domain.Label]int, len(classes))
	for c, label := range classes {
		classIdx[label] = c
	}

	observed := make([][]float64, len(classes))
	for c := range observed {
		observed[c] = make([]float64, cols)
	}
	m.DoNonZero(func(i, j int, v float64) {
		observed[classIdx[labels[i]]][j] += v
	})

	classProb := make([]float64, len(classes))
	for _, label := range labels {
		classProb[classIdx[label]]++
	}
	for c := range classProb {
		classProb[c] /= float64(rows)
	}

	scores := make([]float64, cols)
	pvalues := make([]float64, cols)
	obs := make([]float64, len(classes))
	exp := make([]float64, len(classes))
	dist := distuv.ChiSquared{K: float64(len(classes) - 1)}
	for j := 0; j < cols; j++ {
		total := 0.0
		for c := range classes {
			obs[c] = observed[c][j]
			total += obs[c]
		}
		if total == 0 {
			scores[j], pvalues[j] = 0, 1
			continue
		}
		for c := range classes {
			exp[c] = classProb[c] * total
		}
		score := stat.ChiSquare(obs, exp)
		if math.IsNaN(score) {
			score = 0
		}
		scores[j] = score
		pvalues[j] = 1
		if len(classes) > 1 {
			pvalues[j] = dist.Survival(score)
		}
	}
	return scores, pvalues
}
