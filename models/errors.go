package models

import "fmt"

// FormatError reports a malformed URL parameter or geometry field. It is
// always recoverable: callers substitute the parameter's default value.
type FormatError struct {
	Param  string
	Raw    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %s", e.Param, e.Raw, e.Reason)
}

// NotFoundError reports a city key with no configured geometry source.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown city: %q", e.City)
}

// SourceUnavailable reports a failed geometry/location fetch. The prior
// feature state is left untouched when this is returned.
type SourceUnavailable struct {
	Path string
	Err  error
}

func (e *SourceUnavailable) Error() string {
	return fmt.Sprintf("source unavailable %q: %v", e.Path, e.Err)
}

func (e *SourceUnavailable) Unwrap() error {
	return e.Err
}

// ValidationWarning is inline feedback for a bucket range field. Warnings
// never block reads; the caller decides whether they block an apply.
type ValidationWarning struct {
	Index   int
	Field   string
	Message string
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("bucket %d %s: %s", w.Index, w.Field, w.Message)
}
