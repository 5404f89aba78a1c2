package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"polarity-lab/features"
	"polarity-lab/ingest"
	"polarity-lab/join"
	"polarity-lab/model"
	"polarity-lab/observability"
	"polarity-lab/repositories"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IFeatureService interface {
	Run(ctx context.Context, request RunRequest) (RunReport, error)
}

// RunRequest names the inputs of one batch.
type RunRequest struct {
	CommentsPath string
	DataDir      string
	Sources      []domain.MetricSource
	Policy       join.Policy
	Train        bool
	TestRatio    float64
	Seed         int64
}

// RunReport is what a batch produced. Table is the joined table handed to the trainer.
type RunReport struct {
	RunID       uuid.UUID
	Table       domain.FeatureTable
	Join        join.Report
	Diagnostics domain.Diagnostics
	Accuracy    *float64
	TrainRows   int
	TestRows    int
}

type FeatureService struct {
	log        *slog.Logger
	extractor  *features.Extractor
	repository repositories.IFeatureRepository
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewFeatureService wires a service. repository may be nil, in which case runs are not
// persisted.
func NewFeatureService(log *slog.Logger, extractor *features.Extractor, repository repositories.IFeatureRepository, metrics *observability.Metrics) *FeatureService {
	return &FeatureService{
		log:        log,
		extractor:  extractor,
		repository: repository,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Run loads the inputs, extracts text features, joins the metric tables, optionally fits
// and evaluates the classifier, then persists the joined table. Cancellation is checked
// between stages.
func (s *FeatureService) Run(ctx context.Context, request RunRequest) (RunReport, error) {
	report := RunReport{RunID: uuid.New()}
	log := s.log.With("run_id", report.RunID)
	s.metrics.Runs.Inc()

	// 1. Load
	start := s.now()
	records, err := ingest.LoadComments(request.CommentsPath)
	if err != nil {
		return report, s.fail(observability.StageLoad, fmt.Errorf("load comments: %w", err))
	}
	tables, err := ingest.LoadMetricTables(request.DataDir, request.Sources)
	if err != nil {
		return report, s.fail(observability.StageLoad, fmt.Errorf("load metrics: %w", err))
	}
	s.metrics.ObserveStage(observability.StageLoad, start)
	log.Info("Inputs loaded", "comments", len(records), "metric_sources", len(tables))
	if err := ctx.Err(); err != nil {
		return report, err
	}

	// 2. Extract
	start = s.now()
	result, err := s.extractor.Extract(records)
	report.Diagnostics = result.Diagnostics
	s.logDiagnostics(log, result.Diagnostics)
	if err != nil {
		return report, s.fail(observability.StageExtract, err)
	}
	s.metrics.ObserveStage(observability.StageExtract, start)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	// 3. Join
	start = s.now()
	joined, joinReport, err := join.Join(result.Table, tables, request.Policy)
	if err != nil {
		return report, s.fail(observability.StageJoin, fmt.Errorf("join metrics: %w", err))
	}
	report.Table, report.Join = joined, joinReport
	s.metrics.ObserveStage(observability.StageJoin, start)
	s.metrics.Transactions.Set(float64(joined.Len()))
	s.metrics.DroppedRows.Set(float64(len(joinReport.Dropped)))
	for _, c := range joinReport.Coverage {
		if len(c.Missing) > 0 || len(c.Unmatched) > 0 {
			log.Warn("Metric source does not cover every transaction",
				"source", c.Source, "missing", len(c.Missing), "unmatched", len(c.Unmatched))
		}
	}
	log.Info("Metrics joined", "policy", request.Policy.Kind, "rows", joined.Len(),
		"columns", joined.Width(), "dropped", len(joinReport.Dropped), "filled", joinReport.Filled)
	if joined.Len() == 0 {
		return report, s.fail(observability.StageJoin, fmt.Errorf("%w: no transaction survived the %s join", errors.ErrEmptyTable, request.Policy.Kind))
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	// 4. Train
	if request.Train {
		start = s.now()
		if err := s.train(log, &report, request); err != nil {
			return report, s.fail(observability.StageTrain, err)
		}
		s.metrics.ObserveStage(observability.StageTrain, start)
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	// 5. Store
	if s.repository != nil {
		start = s.now()
		err := s.repository.StoreRun(repositories.StoredRun{
			ID:       report.RunID,
			At:       s.now().UTC(),
			Accuracy: report.Accuracy,
			Table:    joined,
		})
		if err != nil {
			return report, s.fail(observability.StageStore, fmt.Errorf("store run: %w", err))
		}
		s.metrics.ObserveStage(observability.StageStore, start)
		log.Info("Run stored", "rows", joined.Len())
	}
	return report, nil
}

// train splits the joined table, fits the classifier and measures held-out accuracy.
// Tables that cannot feed a binary classifier are reported and skipped.
func (s *FeatureService) train(log *slog.Logger, report *RunReport, request RunRequest) error {
	trainSet, testSet, err := model.Split(report.Table, request.TestRatio, request.Seed)
	if err != nil {
		if stderrors.Is(err, errors.ErrEmptyTable) {
			log.Warn("Training skipped", "error", err)
			return nil
		}
		return err
	}
	report.TrainRows, report.TestRows = trainSet.Len(), testSet.Len()

	classifier := model.NewLogisticRegression(1)
	if err := classifier.Fit(trainSet); err != nil {
		if stderrors.Is(err, errors.ErrNotBinary) {
			log.Warn("Training skipped", "error", err, "train_rows", trainSet.Len())
			return nil
		}
		return fmt.Errorf("fit classifier: %w", err)
	}
	accuracy, err := classifier.Accuracy(testSet)
	if err != nil {
		return fmt.Errorf("evaluate classifier: %w", err)
	}
	report.Accuracy = lo.ToPtr(accuracy)
	s.metrics.Accuracy.Set(accuracy)
	log.Info("Classifier evaluated", "accuracy", accuracy,
		"train_rows", trainSet.Len(), "test_rows", testSet.Len(), "classes", classifier.Classes())
	return nil
}

func (s *FeatureService) logDiagnostics(log *slog.Logger, diag domain.Diagnostics) {
	s.metrics.Documents.Set(float64(diag.Documents))
	s.metrics.Vocabulary.Set(float64(diag.Vocabulary))
	s.metrics.Selected.Set(float64(len(diag.Selected)))

	log.Info("Text features extracted",
		"documents", diag.Documents,
		"empty_documents", diag.EmptyDocuments,
		"redacted_terms", diag.RedactedTerms,
		"vocabulary", diag.Vocabulary,
		"selected", len(diag.Selected),
		"transactions", diag.Transactions,
		"languages", diag.Languages,
	)
	for _, f := range diag.Selected {
		log.Debug("Selected feature", "term", f.Term, "chi2", f.Chi2, "p_value", f.PValue)
	}
}

func (s *FeatureService) fail(stage string, err error) error {
	s.metrics.Fail(stage)
	return err
}
