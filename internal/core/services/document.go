package services

import (
	"context"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
	"github.com/docstash/docstash/internal/core/ports/driving"
	"github.com/docstash/docstash/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService reads documents and manages their highlights.
// The document store is authoritative; the search index only receives
// best-effort mirror updates.
type DocumentService struct {
	docStore driven.DocumentStore
	index    driven.SearchIndex
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, index driven.SearchIndex) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		index:    index,
	}
}

// Get retrieves a document by ID from the authoritative store.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// ReplaceHighlights replaces a document's highlights wholesale.
// Existence is validated through the store first: an unknown ID fails
// with domain.ErrNotFound and causes no mutation anywhere.
func (s *DocumentService) ReplaceHighlights(ctx context.Context, id string, highlights []domain.Highlight) error {
	if _, err := s.docStore.Get(ctx, id); err != nil {
		return err
	}

	if err := s.docStore.ReplaceHighlights(ctx, id, highlights); err != nil {
		return err
	}

	// Best-effort mirror; an index failure never rolls the store back.
	if s.index != nil {
		if err := s.index.UpdateHighlights(ctx, id, highlights); err != nil {
			logger.Warn("Mirroring highlights for %s failed: %v", id, err)
		}
	}
	return nil
}
