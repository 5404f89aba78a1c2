package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_DATA_DIR points to a directory holding comments.csv and the metric exports.
	// Fixtures are generated in a temporary directory when empty.
	DataDir string `envconfig:"E2E_DATA_DIR"`
	// E2E_DEBUG_TABLES dumps every joined table in the test log
	DebugTables bool `envconfig:"E2E_DEBUG_TABLES" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_LEMMATIZE loads the English dictionary instead of running without lemmatizer
	Lemmatize bool `envconfig:"E2E_LEMMATIZE" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
