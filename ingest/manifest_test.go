package ingest

import (
	"polarity-lab/domain"
	"polarity-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, t.TempDir(), "metrics.yaml", `
sources:
  - name: savings_consistency
    file: savings.csv
    columns:
      - name: std_dev
      - name: is_consistent
        kind: boolean
  - name: balance_change
    file: balance.tsv
    columns:
      - name: bal_change
        kind: numeric
`)

	sources, err := LoadManifest(path)

	req.NoError(err)
	req.Equal([]domain.MetricSource{
		domain.NewMetricSource("savings_consistency", "savings.csv",
			domain.MetricColumn{Name: "std_dev", Kind: domain.KindNumeric},
			domain.MetricColumn{Name: "is_consistent", Kind: domain.KindBoolean}),
		domain.NewMetricSource("balance_change", "balance.tsv",
			domain.MetricColumn{Name: "bal_change", Kind: domain.KindNumeric}),
	}, sources)
}

func TestLoadManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "No sources", content: "sources: []\n"},
		{name: "Source without columns", content: "sources:\n  - name: a\n    file: a.csv\n"},
		{name: "Dotted source name", content: "sources:\n  - name: a.b\n    file: a.csv\n    columns:\n      - name: x\n"},
		{name: "Unknown kind", content: "sources:\n  - name: a\n    file: a.csv\n    columns:\n      - name: x\n        kind: text\n"},
		{name: "Duplicate source", content: "sources:\n  - name: a\n    file: a.csv\n    columns:\n      - name: x\n  - name: a\n    file: b.csv\n    columns:\n      - name: y\n"},
		{name: "Malformed yaml", content: "sources: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			path := writeFile(t, t.TempDir(), "metrics.yaml", tt.content)

			_, err := LoadManifest(path)

			req.ErrorIs(err, errors.ErrInvalidConfig)
		})
	}
}

func TestDefaultMetricSourcesAreValid(t *testing.T) {
	req := require.New(t)

	for _, s := range domain.DefaultMetricSources() {
		req.NoError(validate.Struct(s), s.Name)
	}
}
