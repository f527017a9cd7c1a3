package convert

import (
	"fmt"
)

// SampleCountMismatchError is returned when the image and label files
// describe a different number of samples.
type SampleCountMismatchError struct {
	Images int // Samples in the image file (N)
	Labels int // Labels in the label file (N')
}

// Error implements the error interface.
func (e *SampleCountMismatchError) Error() string {
	return fmt.Sprintf("image and label counts do not match: %d images, %d labels", e.Images, e.Labels)
}

// WriteError wraps a failure while producing the output file.
type WriteError struct {
	Path string // Destination path
	Op   string // Operation that failed (e.g., "create", "write", "rename")
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// VerifyError describes the first difference between a CSV file and the IDX
// files it was generated from.
type VerifyError struct {
	Row     int // 1-based line number, 0 when the error is not tied to a line
	Column  int // 0-based field index, -1 when the whole row is affected
	Details string
}

// Error implements the error interface.
func (e *VerifyError) Error() string {
	switch {
	case e.Row == 0:
		return fmt.Sprintf("verify: %s", e.Details)
	case e.Column < 0:
		return fmt.Sprintf("verify: row %d: %s", e.Row, e.Details)
	default:
		return fmt.Sprintf("verify: row %d, column %d: %s", e.Row, e.Column, e.Details)
	}
}
