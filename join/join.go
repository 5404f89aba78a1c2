// Package join appends behavioral metric columns to the aggregated text feature table,
// matching rows by transaction id.
package join

import (
	"fmt"
	"polarity-lab/domain"
	"polarity-lab/errors"

	"github.com/samber/lo"
)

type Kind string

const (
	// Inner keeps only the ids present in the feature table and in every metric table.
	Inner Kind = "inner"
	// Left keeps every feature row and fills absent metric cells.
	Left Kind = "left"
)

type Policy struct {
	Kind Kind
	Fill float64
}

func DefaultPolicy() Policy {
	return Policy{Kind: Inner}
}

// Coverage describes how one metric table matched the feature table.
type Coverage struct {
	Source string
	// Missing lists feature ids without a row in the metric table, in feature order.
	Missing []domain.TxnID
	// Unmatched lists metric ids absent from the feature table, in metric file order.
	Unmatched []domain.TxnID
}

// Report is the explicit outcome of a join: which ids were dropped or filled and why.
type Report struct {
	Policy   Policy
	Coverage []Coverage
	Dropped  []domain.TxnID
	Filled   int
}

// Join returns a new table whose columns are the feature columns followed by the
// namespaced columns of every metric table, in the order given. Row order follows the
// feature table.
func Join(features domain.FeatureTable, tables []domain.MetricTable, policy Policy) (domain.FeatureTable, Report, error) {
	if policy.Kind != Inner && policy.Kind != Left {
		return domain.FeatureTable{}, Report{}, fmt.Errorf("%w: unknown join policy %q", errors.ErrInvalidConfig, policy.Kind)
	}

	columns := append([]string(nil), features.Columns...)
	for _, t := range tables {
		columns = append(columns, t.QualifiedColumns()...)
	}
	if dup := lo.FindDuplicates(columns); len(dup) > 0 {
		return domain.FeatureTable{}, Report{}, fmt.Errorf("%w: duplicate columns %v", errors.ErrInvalidConfig, dup)
	}
	for _, t := range tables {
		for id, values := range t.Rows {
			if len(values) != len(t.Columns) {
				return domain.FeatureTable{}, Report{}, fmt.Errorf("%w: metric source %s row %q has %d values for %d columns",
					errors.ErrInvalidValue, t.Source, id, len(values), len(t.Columns))
			}
		}
	}

	report := Report{Policy: policy, Coverage: make([]Coverage, len(tables))}
	known := lo.SliceToMap(features.IDs(), func(id domain.TxnID) (domain.TxnID, struct{}) {
		return id, struct{}{}
	})
	for i, t := range tables {
		report.Coverage[i] = Coverage{
			Source: t.Source,
			Missing: lo.Filter(features.IDs(), func(id domain.TxnID, _ int) bool {
				_, ok := t.Rows[id]
				return !ok
			}),
			Unmatched: lo.Filter(t.Order, func(id domain.TxnID, _ int) bool {
				_, ok := known[id]
				return !ok
			}),
		}
	}

	out := domain.FeatureTable{Columns: columns, Rows: make([]domain.FeatureRow, 0, features.Len())}
	for _, r := range features.Rows {
		values := append(make([]float64, 0, len(columns)), r.Values...)
		dropped := false
		for _, t := range tables {
			metrics, ok := t.Rows[r.TxnID]
			if !ok {
				if policy.Kind == Inner {
					dropped = true
					break
				}
				metrics = lo.Times(len(t.Columns), func(int) float64 { return policy.Fill })
				report.Filled += len(t.Columns)
			}
			values = append(values, metrics...)
		}
		if dropped {
			report.Dropped = append(report.Dropped, r.TxnID)
			continue
		}
		out.Rows = append(out.Rows, domain.FeatureRow{TxnID: r.TxnID, Label: r.Label, Values: values})
	}
	return out, report, nil
}
