// Package bleveindex mirrors documents into a Bleve full-text index.
// The index is a derived, self-healing projection: the document store
// stays authoritative and a failed mirror write is repaired by the next
// write for the same ID.
package bleveindex

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// maxResults caps how many hits one query returns.
const maxResults = 50

// indexRecord is the document structure stored in Bleve.
// fileName and text are searchable; highlights and createdAt are
// stored verbatim so Fetch can rebuild the full document.
type indexRecord struct {
	FileName   string `json:"fileName"`
	Text       string `json:"text"`
	Highlights string `json:"highlights"`
	CreatedAt  string `json:"createdAt"`
}

// Index wraps a Bleve index as a driven.SearchIndex.
type Index struct {
	mu     sync.RWMutex
	index  bleve.Index
	closed bool
}

// New opens or creates a Bleve index at path.
// If path is empty, an in-memory index is created.
func New(path string) (*Index, error) {
	indexMapping := createIndexMapping()

	var idx bleve.Index
	var err error
	if path == "" {
		idx, err = bleve.NewMemOnly(indexMapping)
	} else {
		idx, err = bleve.Open(path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(path, indexMapping)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	return &Index{index: idx}, nil
}

// createIndexMapping maps fileName and text as searchable fields and
// keeps highlights and createdAt store-only.
func createIndexMapping() *mapping.IndexMappingImpl {
	searchable := bleve.NewTextFieldMapping()
	searchable.Store = true

	storedOnly := bleve.NewTextFieldMapping()
	storedOnly.Store = true
	storedOnly.Index = false
	storedOnly.IncludeInAll = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("fileName", searchable)
	docMapping.AddFieldMappingsAt("text", searchable)
	docMapping.AddFieldMappingsAt("highlights", storedOnly)
	docMapping.AddFieldMappingsAt("createdAt", storedOnly)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Index adds or overwrites the record for a document.
func (i *Index) Index(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	record, err := toRecord(doc)
	if err != nil {
		return &domain.IndexingError{Op: "index", Cause: err}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return &domain.IndexingError{Op: "index", Cause: errClosed}
	}

	if err := i.index.Index(doc.ID, record); err != nil {
		return &domain.IndexingError{Op: "index", Cause: err}
	}
	return nil
}

// Fetch retrieves an indexed document by ID.
func (i *Index) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		return nil, &domain.IndexingError{Op: "fetch", Cause: errClosed}
	}

	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	req.Size = 1
	req.Fields = []string{"*"}

	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &domain.IndexingError{Op: "fetch", Cause: err}
	}
	if len(result.Hits) == 0 {
		return nil, domain.ErrNotFound
	}

	return fromFields(id, result.Hits[0].Fields)
}

// Search performs a keyword match over fileName and text.
func (i *Index) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		return nil, &domain.IndexingError{Op: "search", Cause: errClosed}
	}

	// Blank queries match nothing by contract.
	if strings.TrimSpace(query) == "" {
		return []domain.SearchHit{}, nil
	}

	nameQuery := bleve.NewMatchQuery(query)
	nameQuery.SetField("fileName")
	textQuery := bleve.NewMatchQuery(query)
	textQuery.SetField("text")

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(nameQuery, textQuery))
	req.Size = maxResults
	req.Fields = []string{"*"}

	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &domain.IndexingError{Op: "search", Cause: err}
	}

	hits := make([]domain.SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		doc, err := fromFields(hit.ID, hit.Fields)
		if err != nil {
			return nil, &domain.IndexingError{Op: "search", Cause: err}
		}
		hits = append(hits, domain.SearchHit{ID: hit.ID, Document: *doc, Score: hit.Score})
	}
	return hits, nil
}

// UpdateHighlights mirrors a highlight replacement into the index.
// Bleve has no partial update, so the record is fetched and reindexed.
func (i *Index) UpdateHighlights(ctx context.Context, id string, highlights []domain.Highlight) error {
	doc, err := i.Fetch(ctx, id)
	if err != nil {
		return err
	}
	doc.Highlights = highlights
	return i.Index(ctx, doc)
}

// Close releases the underlying Bleve resources.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil
	}
	i.closed = true
	return i.index.Close()
}

var errClosed = fmt.Errorf("index is closed")

func toRecord(doc *domain.Document) (*indexRecord, error) {
	highlights := doc.Highlights
	if highlights == nil {
		highlights = []domain.Highlight{}
	}
	highlightsJSON, err := json.Marshal(highlights)
	if err != nil {
		return nil, fmt.Errorf("marshalling highlights: %w", err)
	}

	return &indexRecord{
		FileName:   doc.FileName,
		Text:       doc.Text,
		Highlights: string(highlightsJSON),
		CreatedAt:  doc.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

// fromFields rebuilds a document from the stored fields of a hit.
func fromFields(id string, fields map[string]any) (*domain.Document, error) {
	doc := &domain.Document{ID: id}

	if v, ok := fields["fileName"].(string); ok {
		doc.FileName = v
	}
	if v, ok := fields["text"].(string); ok {
		doc.Text = v
	}
	if v, ok := fields["highlights"].(string); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &doc.Highlights); err != nil {
			return nil, fmt.Errorf("unmarshalling highlights: %w", err)
		}
	}
	if v, ok := fields["createdAt"].(string); ok && v != "" {
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parsing createdAt: %w", err)
		}
		doc.CreatedAt = ts
	}

	return doc, nil
}
