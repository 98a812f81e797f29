package driving

import (
	"context"

	"github.com/docstash/docstash/internal/core/domain"
)

// DocumentService reads documents and manages their highlights.
type DocumentService interface {
	// Get retrieves a document by ID from the authoritative store.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// ReplaceHighlights replaces the highlights of an existing
	// document wholesale and mirrors the change into the search
	// index best-effort. Returns domain.ErrNotFound for unknown IDs
	// with no store mutation.
	ReplaceHighlights(ctx context.Context, id string, highlights []domain.Highlight) error
}

// SearchService queries the search index.
type SearchService interface {
	// Search returns relevance-ordered hits for a free-text query.
	// An empty query returns an empty slice.
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)
}
