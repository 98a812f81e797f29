package driven

import (
	"context"

	"github.com/docstash/docstash/internal/core/domain"
)

// SearchIndex mirrors document store contents into a full-text index.
// It is best-effort and never authoritative: writes may fail without
// affecting the corresponding document store commit, and the mirror
// self-heals on the next write for the same ID.
type SearchIndex interface {
	// Index adds or overwrites the index record for a document.
	Index(ctx context.Context, doc *domain.Document) error

	// Fetch retrieves an indexed document by ID. Convenience path only;
	// the document store remains authoritative.
	// Returns domain.ErrNotFound when the ID is not indexed.
	Fetch(ctx context.Context, id string) (*domain.Document, error)

	// Search performs a keyword match over file names and text.
	// Results are relevance-ordered by the underlying engine.
	// An empty or unmatched query yields an empty slice, not an error.
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)

	// UpdateHighlights mirrors a highlight replacement into the index.
	// Returns domain.ErrNotFound when the ID is not indexed.
	UpdateHighlights(ctx context.Context, id string, highlights []domain.Highlight) error

	// Close releases resources.
	Close() error
}
