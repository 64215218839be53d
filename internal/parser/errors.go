package parser

import "fmt"

// RowError wraps a parse failure with enough context for the caller to log
// it and decide between skipping the row and aborting the document.
type RowError struct {
	Row     int
	Faculty string
	Err     error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (faculty %q): %v", e.Row, e.Faculty, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
