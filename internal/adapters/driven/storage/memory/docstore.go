// Package memory provides an in-memory DocumentStore. It backs tests
// and the --memory mode, where no durable backend is configured.
package memory

import (
	"context"
	"sync"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// The single mutex serializes writes per key; readers get copies so a
// later highlight replacement cannot mutate an already returned value.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// Put stores or overwrites a document.
func (s *DocumentStore) Put(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *doc
	stored.Highlights = copyHighlights(doc.Highlights)
	s.documents[doc.ID] = stored
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc.Highlights = copyHighlights(doc.Highlights)
	return &doc, nil
}

// ReplaceHighlights replaces the highlights of an existing document.
func (s *DocumentStore) ReplaceHighlights(_ context.Context, id string, highlights []domain.Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Highlights = copyHighlights(highlights)
	s.documents[id] = doc
	return nil
}

// Close releases resources. A no-op for the in-memory store.
func (s *DocumentStore) Close() error {
	return nil
}

// copyHighlights clones a highlight slice one level deep. Highlight
// values stay shared; callers treat them as immutable records.
func copyHighlights(src []domain.Highlight) []domain.Highlight {
	if src == nil {
		return nil
	}
	dst := make([]domain.Highlight, len(src))
	copy(dst, src)
	return dst
}
