package services

import (
	"context"
	"strings"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
	"github.com/docstash/docstash/internal/core/ports/driving"
	"github.com/docstash/docstash/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers free-text queries from the search index.
type SearchService struct {
	index driven.SearchIndex
}

// NewSearchService creates a new search service.
func NewSearchService(index driven.SearchIndex) *SearchService {
	return &SearchService{index: index}
}

// Search returns relevance-ordered hits for a query. An empty or
// blank query returns an empty result, not an error.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchHit{}, nil
	}

	logger.Debug("Searching for %q", query)
	hits, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	logger.Debug("Search returned %d hits", len(hits))
	return hits, nil
}
