package errors

import "fmt"

var (
	ErrMissingColumn    = fmt.Errorf("missing column")
	ErrDuplicateTxnID   = fmt.Errorf("duplicate transaction id")
	ErrInvalidValue     = fmt.Errorf("invalid value")
	ErrNotText          = fmt.Errorf("input is not a text file")
	ErrEmptyFile        = fmt.Errorf("empty file")
	ErrLabelMismatch    = fmt.Errorf("labels are not aligned with feature rows")
	ErrNoFeatureColumns = fmt.Errorf("no feature columns survived selection")
	ErrInvalidConfig    = fmt.Errorf("invalid configuration")
	ErrNotBinary        = fmt.Errorf("labels are not binary")
	ErrEmptyTable       = fmt.Errorf("table has no rows")
	ErrMissingValues    = fmt.Errorf("table contains missing values")
	ErrUnknownRun       = fmt.Errorf("unknown run")
)
