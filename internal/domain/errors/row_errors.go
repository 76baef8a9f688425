package errors

import "fmt"

// RowError marks a single frame row that failed coercion or validation.
// A row error fails the row only; the surrounding chunk keeps processing and
// accumulates a failed-row counter.
type RowError struct {
	Row    int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: column %q: %s", e.Row, e.Column, e.Reason)
}

// NewRowError creates a new RowError.
func NewRowError(row int, column, reason string) *RowError {
	return &RowError{Row: row, Column: column, Reason: reason}
}
