package dataset

import (
	"errors"
	"fmt"
)

// ErrNoRecords indicates the input table had no data rows.
var ErrNoRecords = errors.New("dataset: no records")

// ConversionError reports a value that survived the missing-value filters
// but could not be coerced to its target type. It means the filters did not
// run first or the upstream schema changed, so callers treat it as fatal.
type ConversionError struct {
	Field string
	Value string
	Row   int
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("dataset: cannot convert %s value %q at row %d: %v", e.Field, e.Value, e.Row, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// FormatError reports an elapsed-time cell without the expected "(min) "
// prefix. Like ConversionError it signals a schema change and is fatal.
type FormatError struct {
	Field string
	Value string
	Row   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset: unexpected %s format %q at row %d", e.Field, e.Value, e.Row)
}
