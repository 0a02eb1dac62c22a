package refdata

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for reference-table loading. These cover structural
// problems with a table file; malformed individual cells are coerced to zero
// and never surface as errors.
var (
	// ErrMissingColumn indicates a table is missing a required header.
	ErrMissingColumn = constError("required column missing")

	// ErrEmptyTable indicates a table has a header but no data rows.
	ErrEmptyTable = constError("table has no data rows")
)
