package driven

import (
	"context"

	"github.com/docstash/docstash/internal/core/domain"
)

// DocumentStore persists documents. It is the single source of truth:
// the search index is only a derived projection of its contents.
//
// Implementations must serialize writes per key. Concurrent writes to
// different identifiers may interleave freely; concurrent writes to the
// same identifier resolve last-write-wins with no field-level tearing.
type DocumentStore interface {
	// Put stores or overwrites a document unconditionally.
	Put(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound when the ID is unknown; backend
	// failures surface as a distinct *domain.StoreError.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// ReplaceHighlights atomically replaces the highlights of an
	// existing document, leaving every other field untouched.
	// Returns domain.ErrNotFound when the ID is unknown.
	ReplaceHighlights(ctx context.Context, id string, highlights []domain.Highlight) error

	// Close releases resources.
	Close() error
}
