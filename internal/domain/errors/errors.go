// Package errors holds the typed error taxonomy of the ingest core and
// re-exposes the standard helpers so callers need a single import.
package errors

import "errors"

var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)
