package ingest

import (
	"fmt"
	"os"
	"polarity-lab/domain"
	"polarity-lab/errors"

	"gopkg.in/yaml.v3"
)

// Manifest lists the metric sources to join, replacing the defaults.
//
//	sources:
//	  - name: savings_consistency
//	    file: savings_consistency.csv
//	    columns:
//	      - name: std_dev
//	      - name: is_consistent
//	        kind: boolean
type Manifest struct {
	Sources []domain.MetricSource `yaml:"sources" validate:"required,min=1,dive"`
}

// LoadManifest reads and validates a YAML manifest. Columns without a kind are numeric.
func LoadManifest(path string) ([]domain.MetricSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: manifest %s: %v", errors.ErrInvalidConfig, path, err)
	}
	if err := validate.Struct(m); err != nil {
		return nil, fmt.Errorf("%w: manifest %s: %v", errors.ErrInvalidConfig, path, err)
	}

	seen := make(map[string]struct{}, len(m.Sources))
	for i := range m.Sources {
		s := &m.Sources[i]
		if _, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%w: manifest %s: source %q declared twice", errors.ErrInvalidConfig, path, s.Name)
		}
		seen[s.Name] = struct{}{}
		for j := range s.Columns {
			if s.Columns[j].Kind == "" {
				s.Columns[j].Kind = domain.KindNumeric
			}
		}
	}
	return m.Sources, nil
}
