package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"polarity-lab/features"
	"polarity-lab/internal"
	"polarity-lab/normalize"
	"polarity-lab/observability"
	"polarity-lab/redaction"
	"polarity-lab/repositories"
	"polarity-lab/services"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or scheduler.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Polarity batch terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run builds the pipeline from the environment, executes one batch and reports.
// Deferred cleanups (database, metrics textfile) run before the exit code reaches main.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	sources, err := config.MetricSources()
	if err != nil {
		return exitConfig, err
	}
	redactor, err := redaction.NewRedactor(config.Redactions())
	if err != nil {
		return exitConfig, fmt.Errorf("redaction terms: %w", err)
	}

	// 2. Text pipeline
	lemmatizer, err := normalize.NewEnglishLemmatizer()
	if err != nil {
		return exitRuntime, fmt.Errorf("lemmatizer: %w", err)
	}
	normalizer := normalize.NewNormalizer(lemmatizer, config.Scope())
	extractor := features.NewExtractor(config.Params(), normalizer, redactor)

	// 3. Optional persistence (BadgerDB)
	var repository repositories.IFeatureRepository
	if config.BadgerFilepath != "" {
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		repository = repositories.NewFeatureRepository(db, log)
	}

	// 4. Metrics
	metrics := observability.NewMetrics()
	if config.MetricsTextfile != "" {
		defer func() {
			if err := metrics.WriteTextfile(config.MetricsTextfile); err != nil {
				log.Warn("Unable to write metrics textfile", "path", config.MetricsTextfile, "error", err)
			}
		}()
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Run the batch
	service := services.NewFeatureService(log, extractor, repository, metrics)
	report, err := service.Run(ctx, services.RunRequest{
		CommentsPath: config.CommentsPath,
		DataDir:      config.DataDir,
		Sources:      sources,
		Policy:       config.Policy(),
		Train:        config.Train,
		TestRatio:    config.TestRatio,
		Seed:         config.SplitSeed,
	})
	if err != nil {
		return exitRuntime, fmt.Errorf("run %s: %w", report.RunID, err)
	}

	attrs := []any{"run_id", report.RunID, "rows", report.Table.Len(), "columns", report.Table.Width()}
	if report.Accuracy != nil {
		attrs = append(attrs, "accuracy", *report.Accuracy)
	}
	if stats, err := observability.SelfStats(); err == nil {
		attrs = append(attrs, "rss_bytes", stats.RSS, "cpu_percent", stats.CPUPercent)
	}
	log.Info("Batch completed", attrs...)
	return exitOK, nil
}
