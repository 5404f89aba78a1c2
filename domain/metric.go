package domain

// ColumnKind tells the loader how to parse a metric cell.
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindBoolean ColumnKind = "boolean"
)

type MetricColumn struct {
	Name string     `yaml:"name" validate:"required"`
	Kind ColumnKind `yaml:"kind" validate:"omitempty,oneof=numeric boolean"`
}

// MetricSource describes one behavioral-metric CSV export.
type MetricSource struct {
	Name    string         `yaml:"name" validate:"required,excludesall=."`
	File    string         `yaml:"file" validate:"required"`
	Columns []MetricColumn `yaml:"columns" validate:"required,min=1,dive"`
}

func NewMetricSource(name, file string, columns ...MetricColumn) MetricSource {
	return MetricSource{Name: name, File: file, Columns: columns}
}

// MetricTable is a loaded metric file: one row per transaction id.
type MetricTable struct {
	Source  string
	Columns []string
	Order   []TxnID
	Rows    map[TxnID][]float64
}

// QualifiedColumns returns the columns namespaced by source, as they appear once joined.
func (m MetricTable) QualifiedColumns() []string {
	out := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		out[i] = m.Source + "." + c
	}
	return out
}

// DefaultMetricSources lists the five exports produced by the metric jobs.
func DefaultMetricSources() []MetricSource {
	return []MetricSource{
		NewMetricSource("savings_consistency", "savings_consistency.csv",
			MetricColumn{Name: "std_dev", Kind: KindNumeric},
			MetricColumn{Name: "is_consistent", Kind: KindBoolean}),
		NewMetricSource("repay_behavior", "repay_behavior.csv",
			MetricColumn{Name: "proportion", Kind: KindNumeric}),
		NewMetricSource("loan_frequency", "loan_frequency.csv",
			MetricColumn{Name: "avg_loan_time", Kind: KindNumeric}),
		NewMetricSource("approval_rating", "approval_rating.csv",
			MetricColumn{Name: "net_transaction_score", Kind: KindNumeric}),
		NewMetricSource("balance_change", "balance_change.csv",
			MetricColumn{Name: "bal_change", Kind: KindNumeric}),
	}
}
