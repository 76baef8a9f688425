package errors

import (
	"errors"
	"fmt"
)

// ErrJobNotFound is returned when looking up an unknown upload job.
var ErrJobNotFound = errors.New("upload job not found")

// DuplicateUploadError is returned when a file name was already ingested.
// It is distinguishable from generic I/O errors so callers can report a
// conflict instead of a server failure.
type DuplicateUploadError struct {
	FileName string
}

func (e *DuplicateUploadError) Error() string {
	return fmt.Sprintf("duplicate upload: file %q was already ingested", e.FileName)
}

// NewDuplicateUploadError creates a new DuplicateUploadError.
func NewDuplicateUploadError(fileName string) *DuplicateUploadError {
	return &DuplicateUploadError{FileName: fileName}
}

// InputError is returned when an upload is rejected before any write, such
// as missing required columns or an unparseable header.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid upload input: " + e.Reason
}

// NewInputError creates a new InputError.
func NewInputError(reason string) *InputError {
	return &InputError{Reason: reason}
}
