package features

import (
	"polarity-lab/domain"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Aggregate collapses the per-comment table into one row per transaction id. Values are
// the column-wise mean of the id's rows; the label is the id's most frequent label (ties go
// to the lexicographically smallest). Rows come out in first-seen id order.
func Aggregate(table domain.FeatureTable) domain.FeatureTable {
	ids := lo.Uniq(table.IDs())
	groups := lo.GroupBy(table.Rows, func(r domain.FeatureRow) domain.TxnID {
		return r.TxnID
	})

	width := table.Width()
	out := domain.FeatureTable{
		Columns: append([]string(nil), table.Columns...),
		Rows:    make([]domain.FeatureRow, 0, len(ids)),
	}
	for _, id := range ids {
		group := groups[id]
		values := make([]float64, width)
		col := make([]float64, len(group))
		for j := 0; j < width; j++ {
			for i, r := range group {
				col[i] = r.Values[j]
			}
			values[j] = stat.Mean(col, nil)
		}
		out.Rows = append(out.Rows, domain.FeatureRow{
			TxnID:  id,
			Label:  majorityLabel(group),
			Values: values,
		})
	}
	return out
}

func majorityLabel(rows []domain.FeatureRow) domain.Label {
	counts := lo.CountValues(lo.Map(rows, func(r domain.FeatureRow, _ int) domain.Label {
		return r.Label
	}))
	labels := lo.Keys(counts)
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) == 0 {
		return ""
	}
	return labels[0]
}
