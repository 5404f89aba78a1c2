package features

import (
	"fmt"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Params are the tunables of one extraction run.
type Params struct {
	MaxFeatures    int
	TargetFeatures int
	MinDF          int
	MaxDF          float64
	NgramMax       int
}

func DefaultParams() Params {
	return Params{
		MaxFeatures:    500,
		TargetFeatures: 30,
		MinDF:          2,
		MaxDF:          0.95,
		NgramMax:       3,
	}
}

// Cleaner normalizes a single raw comment.
type Cleaner interface {
	Normalize(text string) string
}

// Censor removes unwanted terms from a normalized comment.
type Censor interface {
	Redact(cleaned string) (string, []string)
}

// Result is everything one run produced. Table is the aggregated, one-row-per-transaction
// output; PerRow keeps the scaled comment-level rows it was computed from.
type Result struct {
	Table       domain.FeatureTable
	PerRow      domain.FeatureTable
	Vocabulary  Vocabulary
	Selection   Selection
	Scales      []float64
	Diagnostics domain.Diagnostics
}

// Extractor wires the text stages together for a single batch. It carries configuration
// only: fitted state lives in the Result of each call.
type Extractor struct {
	params     Params
	normalizer Cleaner
	redactor   Censor
}

// NewExtractor returns an Extractor. redactor may be nil.
func NewExtractor(params Params, normalizer Cleaner, redactor Censor) *Extractor {
	return &Extractor{params: params, normalizer: normalizer, redactor: redactor}
}

// Extract runs normalization, redaction, TF-IDF, chi-square selection, scaling and
// aggregation over the records. It fails with ErrNoFeatureColumns when no column survives.
func (e *Extractor) Extract(records []domain.CommentRecord) (Result, error) {
	diag := domain.Diagnostics{Documents: len(records)}
	labels := make([]domain.Label, len(records))
	raw := make([]string, len(records))
	cleaned := make([]string, len(records))
	for i, rec := range records {
		labels[i] = rec.Label
		raw[i] = rec.Text
		text := e.normalizer.Normalize(rec.Text)
		if e.redactor != nil {
			var removed []string
			text, removed = e.redactor.Redact(text)
			diag.RedactedTerms += len(removed)
		}
		if text == "" {
			diag.EmptyDocuments++
		}
		cleaned[i] = text
	}
	diag.Languages = DetectLanguages(raw)

	p := e.params
	vocab, matrix := NewVectorizer(p.MaxFeatures, p.MinDF, p.MaxDF, p.NgramMax).FitTransform(cleaned)
	diag.Vocabulary = vocab.Len()

	selection, err := NewSelector(p.TargetFeatures).Select(matrix, vocab, labels)
	if err != nil {
		return Result{}, fmt.Errorf("select features: %w", err)
	}

	selected := matrix.Columns(selection.Columns)
	scaler := FitScaler(selected, selection.Len())
	scaled := scaler.Transform(selected)

	perRow := domain.FeatureTable{
		Columns: append([]string(nil), selection.Terms...),
		Rows:    make([]domain.FeatureRow, len(records)),
	}
	for i, rec := range records {
		perRow.Rows[i] = domain.FeatureRow{TxnID: rec.TxnID, Label: rec.Label, Values: scaled[i]}
	}
	table := Aggregate(perRow)

	for j, term := range selection.Terms {
		diag.Selected = append(diag.Selected, domain.FeatureScore{
			Term:   term,
			Chi2:   selection.Scores[j],
			PValue: selection.PValues[j],
		})
	}
	diag.Transactions = table.Len()

	result := Result{
		Table:       table,
		PerRow:      perRow,
		Vocabulary:  vocab,
		Selection:   selection,
		Scales:      scaler.Scales(),
		Diagnostics: diag,
	}
	if table.Width() == 0 {
		return result, fmt.Errorf("%w: %d documents, %d empty after cleaning, vocabulary of %d terms (min_df=%d, max_df=%.2f)",
			errors.ErrNoFeatureColumns, diag.Documents, diag.EmptyDocuments, diag.Vocabulary, p.MinDF, p.MaxDF)
	}
	return result, nil
}

// DetectLanguages counts the ISO 639-1 language of every non-blank raw comment.
// Undetectable comments are counted under "und".
func DetectLanguages(texts []string) map[string]int {
	out := make(map[string]int)
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		code := whatlanggo.Detect(t).Lang.Iso6391()
		if code == "" {
			code = "und"
		}
		out[code]++
	}
	return out
}
