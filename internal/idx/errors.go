package idx

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrFileNotFound  = errors.New("input file not found or unreadable")
	ErrShortHeader   = errors.New("header too short")
	ErrShapeMismatch = errors.New("data size does not match header shape")
	ErrLabelCount    = errors.New("label count does not match header")
	ErrInvalidMagic  = errors.New("invalid magic number")
)

// FormatError provides detailed information about a malformed IDX file.
type FormatError struct {
	Path    string // File being read
	Kind    error  // One of the Err* sentinels above
	Details string // Additional details
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Kind, e.Details)
}

// Unwrap returns the sentinel so callers can use errors.Is.
func (e *FormatError) Unwrap() error {
	return e.Kind
}

func formatError(path string, kind error, format string, args ...any) *FormatError {
	return &FormatError{
		Path:    path,
		Kind:    kind,
		Details: fmt.Sprintf(format, args...),
	}
}
