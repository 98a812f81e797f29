package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	// It is a normal negative outcome, not a crash.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no extractor accepts the content type.
	// With a fallback extractor registered this should not occur.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ExtractionError indicates that turning artifact bytes into text failed:
// malformed artifact, engine failure, or extraction timeout. It is fatal
// for the ingestion request; no partial document is persisted.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError wraps cause as an ExtractionError.
// Returns the cause unchanged if it already is one.
func NewExtractionError(cause error) error {
	var ee *ExtractionError
	if errors.As(cause, &ee) {
		return cause
	}
	return &ExtractionError{Cause: cause}
}

// IsExtractionError reports whether err is an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

// StoreError indicates the document store backend failed. For ingestion
// this means no identifier is returned; for highlight updates it means
// no partial mutation happened.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// IsStoreError reports whether err is a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IndexingError indicates a search index write or update failed.
// It is non-fatal: the document store remains committed and callers
// only observe the failure through logs and the indexed flag.
type IndexingError struct {
	Op    string
	Cause error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("index %s: %v", e.Op, e.Cause)
}

func (e *IndexingError) Unwrap() error {
	return e.Cause
}

// IsIndexingError reports whether err is an IndexingError.
func IsIndexingError(err error) bool {
	var ie *IndexingError
	return errors.As(err, &ie)
}
