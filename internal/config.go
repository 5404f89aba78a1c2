package internal

import (
	"fmt"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"polarity-lab/features"
	"polarity-lab/ingest"
	"polarity-lab/join"
	"polarity-lab/normalize"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	CommentsPath    string  `env:"COMMENTS_PATH,required=true" validate:"required"`
	MetricsManifest string  `env:"METRICS_MANIFEST"`
	DataDir         string  `env:"DATA_DIR,default=."`
	MaxFeatures     int     `env:"MAX_FEATURES,default=500" validate:"gt=0"`
	TargetFeatures  int     `env:"TARGET_FEATURES,default=30" validate:"gt=0"`
	MinDF           int     `env:"MIN_DF,default=2" validate:"gte=1"`
	MaxDF           float64 `env:"MAX_DF,default=0.95" validate:"gt=0,lte=1"`
	NgramMax        int     `env:"NGRAM_MAX,default=3" validate:"gte=1,lte=5"`
	LemmaScope      string  `env:"LEMMA_SCOPE,default=document" validate:"oneof=document word"`
	RedactTerms     string  `env:"REDACT_TERMS"`
	JoinPolicy      string  `env:"JOIN_POLICY,default=inner" validate:"oneof=inner left"`
	JoinFill        float64 `env:"JOIN_FILL,default=0"`
	Train           bool    `env:"TRAIN,default=true"`
	TestRatio       float64 `env:"TEST_RATIO,default=0.2" validate:"gt=0,lt=1"`
	SplitSeed       int64   `env:"SPLIT_SEED,default=42"`
	BadgerFilepath  string  `env:"BADGER_FILEPATH"`
	MetricsTextfile string  `env:"METRICS_TEXTFILE"`
	LogLevel        string  `env:"LOG_LEVEL,default=INFO"`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return config, nil
}

func (c Config) Params() features.Params {
	return features.Params{
		MaxFeatures:    c.MaxFeatures,
		TargetFeatures: c.TargetFeatures,
		MinDF:          c.MinDF,
		MaxDF:          c.MaxDF,
		NgramMax:       c.NgramMax,
	}
}

func (c Config) Policy() join.Policy {
	return join.Policy{Kind: join.Kind(c.JoinPolicy), Fill: c.JoinFill}
}

func (c Config) Scope() normalize.Scope {
	return normalize.Scope(c.LemmaScope)
}

// Redactions splits REDACT_TERMS on commas, dropping blanks.
func (c Config) Redactions() []string {
	var terms []string
	for _, t := range strings.Split(c.RedactTerms, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// MetricSources returns the sources of the manifest when one is configured, the default
// exports otherwise.
func (c Config) MetricSources() ([]domain.MetricSource, error) {
	if c.MetricsManifest == "" {
		return domain.DefaultMetricSources(), nil
	}
	return ingest.LoadManifest(c.MetricsManifest)
}
