package e2e

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"polarity-lab/domain"
	"polarity-lab/features"
	"polarity-lab/normalize"
	"polarity-lab/observability"
	"polarity-lab/redaction"
	"polarity-lab/repositories"
	"polarity-lab/services"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BasePipelineSuite struct {
	suite.Suite
	Config     Config
	normalizer normalize.Normalizer
}

// SetupSuite loads the environment configuration and the lemmatizer once for every scenario.
func (s *BasePipelineSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	var lemmatizer normalize.Lemmatizer
	if s.Config.Lemmatize {
		l, err := normalize.NewEnglishLemmatizer()
		s.Require().NoError(err)
		lemmatizer = l
	}
	s.normalizer = normalize.NewNormalizer(lemmatizer, normalize.ScopeDocument)
}

// Step prints a colorized header so that scenario logs read as a sequence of steps.
func (s *BasePipelineSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Fixtures writes files into a fresh directory and returns it.
func (s *BasePipelineSuite) Fixtures(files map[string]string) string {
	dir := s.T().TempDir()
	for name, content := range files {
		s.Require().NoError(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

// Pipeline wires a service over an in-memory badger repository.
func (s *BasePipelineSuite) Pipeline(params features.Params, redact ...string) (*services.FeatureService, repositories.IFeatureRepository, *observability.Metrics) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	redactor, err := redaction.NewRedactor(redact)
	s.Require().NoError(err)
	repo := repositories.NewFeatureRepository(db, log)
	metrics := observability.NewMetrics()
	extractor := features.NewExtractor(params, s.normalizer, redactor)
	return services.NewFeatureService(log, extractor, repo, metrics), repo, metrics
}

// DumpTable logs a table when E2E_DEBUG_TABLES is set.
func (s *BasePipelineSuite) DumpTable(table domain.FeatureTable) {
	if !s.Config.DebugTables {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "txn_id\tlabel\t%s\n", strings.Join(table.Columns, "\t"))
	for _, r := range table.Rows {
		fmt.Fprintf(&b, "%s\t%s", r.TxnID, r.Label)
		for _, v := range r.Values {
			fmt.Fprintf(&b, "\t%.4f", v)
		}
		b.WriteString("\n")
	}
	s.T().Log(b.String())
}
