package join

import (
	"polarity-lab/domain"
	"polarity-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func featureTable() domain.FeatureTable {
	return domain.FeatureTable{
		Columns: []string{"great", "great service"},
		Rows: []domain.FeatureRow{
			{TxnID: "T1", Label: "0", Values: []float64{0.5, 0.25}},
			{TxnID: "T2", Label: "1", Values: []float64{1, 1}},
		},
	}
}

func repayTable() domain.MetricTable {
	return domain.MetricTable{
		Source:  "repay_behavior",
		Columns: []string{"proportion"},
		Order:   []domain.TxnID{"T3", "T1"},
		Rows: map[domain.TxnID][]float64{
			"T3": {0.9},
			"T1": {0.4},
		},
	}
}

func TestJoin_Inner(t *testing.T) {
	req := require.New(t)

	out, report, err := Join(featureTable(), []domain.MetricTable{repayTable()}, DefaultPolicy())

	req.NoError(err)
	req.Equal([]string{"great", "great service", "repay_behavior.proportion"}, out.Columns)
	req.Equal([]domain.FeatureRow{
		{TxnID: "T1", Label: "0", Values: []float64{0.5, 0.25, 0.4}},
	}, out.Rows)
	req.Equal([]domain.TxnID{"T2"}, report.Dropped)
	req.Zero(report.Filled)
	req.Equal([]Coverage{{
		Source:    "repay_behavior",
		Missing:   []domain.TxnID{"T2"},
		Unmatched: []domain.TxnID{"T3"},
	}}, report.Coverage)
}

func TestJoin_Left(t *testing.T) {
	req := require.New(t)

	out, report, err := Join(featureTable(), []domain.MetricTable{repayTable()}, Policy{Kind: Left, Fill: -1})

	req.NoError(err)
	req.Equal([]domain.TxnID{"T1", "T2"}, out.IDs())
	v, ok := out.Value("T2", "repay_behavior.proportion")
	req.True(ok)
	req.Equal(-1.0, v)
	v, ok = out.Value("T1", "repay_behavior.proportion")
	req.True(ok)
	req.Equal(0.4, v)
	req.Empty(report.Dropped)
	req.Equal(1, report.Filled)

	// The unmatched metric id is reported, never added
	_, ok = out.Row("T3")
	req.False(ok)
	req.Equal([]domain.TxnID{"T3"}, report.Coverage[0].Unmatched)
}

func TestJoin_SeveralTables(t *testing.T) {
	req := require.New(t)
	savings := domain.MetricTable{
		Source:  "savings_consistency",
		Columns: []string{"std_dev", "is_consistent"},
		Order:   []domain.TxnID{"T2", "T1"},
		Rows: map[domain.TxnID][]float64{
			"T1": {2, 1},
			"T2": {3, 0},
		},
	}
	repay := repayTable()
	repay.Rows["T2"] = []float64{0.7}
	repay.Order = append(repay.Order, "T2")

	out, report, err := Join(featureTable(), []domain.MetricTable{savings, repay}, DefaultPolicy())

	req.NoError(err)
	req.Equal([]string{
		"great", "great service",
		"savings_consistency.std_dev", "savings_consistency.is_consistent",
		"repay_behavior.proportion",
	}, out.Columns)
	req.Equal([]float64{1, 1, 3, 0, 0.7}, out.Rows[1].Values)
	req.Empty(report.Dropped)
	for _, r := range out.Rows {
		req.Len(r.Values, out.Width())
	}
}

func TestJoin_DoesNotMutateInput(t *testing.T) {
	req := require.New(t)
	features := featureTable()

	_, _, err := Join(features, []domain.MetricTable{repayTable()}, Policy{Kind: Left})

	req.NoError(err)
	req.Equal(featureTable(), features)
}

func TestJoin_Errors(t *testing.T) {
	tests := []struct {
		name     string
		tables   []domain.MetricTable
		policy   Policy
		expected error
	}{
		{
			name:     "Unknown policy",
			tables:   []domain.MetricTable{repayTable()},
			policy:   Policy{Kind: "outer"},
			expected: errors.ErrInvalidConfig,
		},
		{
			name:     "Same source twice",
			tables:   []domain.MetricTable{repayTable(), repayTable()},
			policy:   DefaultPolicy(),
			expected: errors.ErrInvalidConfig,
		},
		{
			name: "Ragged metric row",
			tables: []domain.MetricTable{{
				Source:  "repay_behavior",
				Columns: []string{"proportion"},
				Order:   []domain.TxnID{"T1"},
				Rows:    map[domain.TxnID][]float64{"T1": {1, 2}},
			}},
			policy:   DefaultPolicy(),
			expected: errors.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			_, _, err := Join(featureTable(), tt.tables, tt.policy)

			req.ErrorIs(err, tt.expected)
		})
	}
}

func TestJoin_NoTables(t *testing.T) {
	req := require.New(t)

	out, report, err := Join(featureTable(), nil, DefaultPolicy())

	req.NoError(err)
	req.Equal(featureTable(), out)
	req.Empty(report.Coverage)
}
