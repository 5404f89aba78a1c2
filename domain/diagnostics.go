package domain

// FeatureScore is the chi-square statistic of one selected term.
type FeatureScore struct {
	Term   string
	Chi2   float64
	PValue float64
}

// Diagnostics summarises one extraction run. The core returns it instead of logging.
type Diagnostics struct {
	Documents      int
	EmptyDocuments int
	RedactedTerms  int
	Languages      map[string]int
	Vocabulary     int
	Selected       []FeatureScore
	Transactions   int
}
