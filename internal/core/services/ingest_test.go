package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// --- Mock implementations for ingest testing ---

// ingestMockRegistry implements driven.ExtractorRegistry.
type ingestMockRegistry struct {
	text  string
	err   error
	block bool // wait for ctx cancellation instead of returning
}

func (m *ingestMockRegistry) Extract(ctx context.Context, _ *domain.Artifact) (string, error) {
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.text, m.err
}

func (m *ingestMockRegistry) Register(_ driven.Extractor) {}

func (m *ingestMockRegistry) SupportedMIMETypes() []string { return nil }

// ingestMockStore implements driven.DocumentStore and records writes.
type ingestMockStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Document
	putErr error
}

func newIngestMockStore() *ingestMockStore {
	return &ingestMockStore{docs: make(map[string]domain.Document)}
}

func (m *ingestMockStore) Put(_ context.Context, doc *domain.Document) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = *doc
	return nil
}

func (m *ingestMockStore) Get(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *ingestMockStore) ReplaceHighlights(_ context.Context, id string, highlights []domain.Highlight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Highlights = highlights
	m.docs[id] = doc
	return nil
}

func (m *ingestMockStore) Close() error { return nil }

func (m *ingestMockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// ingestMockIndex implements driven.SearchIndex.
type ingestMockIndex struct {
	mu       sync.Mutex
	indexed  map[string]domain.Document
	indexErr error
}

func newIngestMockIndex() *ingestMockIndex {
	return &ingestMockIndex{indexed: make(map[string]domain.Document)}
}

func (m *ingestMockIndex) Index(_ context.Context, doc *domain.Document) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed[doc.ID] = *doc
	return nil
}

func (m *ingestMockIndex) Fetch(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.indexed[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *ingestMockIndex) Search(_ context.Context, _ string) ([]domain.SearchHit, error) {
	return []domain.SearchHit{}, nil
}

func (m *ingestMockIndex) UpdateHighlights(_ context.Context, id string, highlights []domain.Highlight) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.indexed[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Highlights = highlights
	m.indexed[id] = doc
	return nil
}

func (m *ingestMockIndex) Close() error { return nil }

// --- Tests ---

var hexID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func testArtifact() *domain.Artifact {
	return &domain.Artifact{
		FileName: "scan.png",
		MIMEType: "image/png",
		Content:  []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestIngest_Success(t *testing.T) {
	store := newIngestMockStore()
	index := newIngestMockIndex()
	svc := NewIngestService(&ingestMockRegistry{text: "recognized text"}, store, index, 0)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.NoError(t, err)

	// Identifier is a fixed-length lowercase hex string.
	assert.Regexp(t, hexID, result.ID)
	assert.Equal(t, "recognized text", result.Text)
	assert.True(t, result.Indexed)

	// Read-your-write on the primary store.
	doc, err := store.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, "recognized text", doc.Text)
	assert.Equal(t, "scan.png", doc.FileName)
	assert.NotNil(t, doc.Highlights)
	assert.Empty(t, doc.Highlights)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestIngest_UniqueIDs(t *testing.T) {
	store := newIngestMockStore()
	svc := NewIngestService(&ingestMockRegistry{text: "text"}, store, newIngestMockIndex(), 0)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		result, err := svc.Ingest(context.Background(), testArtifact())
		require.NoError(t, err)
		assert.False(t, seen[result.ID], "duplicate id %s", result.ID)
		seen[result.ID] = true
	}
}

func TestIngest_InvalidArtifact(t *testing.T) {
	svc := NewIngestService(&ingestMockRegistry{}, newIngestMockStore(), newIngestMockIndex(), 0)

	_, err := svc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ingest(context.Background(), &domain.Artifact{FileName: "empty.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngest_ExtractionFailure(t *testing.T) {
	store := newIngestMockStore()
	cause := errors.New("engine internal failure")
	svc := NewIngestService(&ingestMockRegistry{err: cause}, store, newIngestMockIndex(), 0)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsExtractionError(err))
	assert.ErrorIs(t, err, cause)

	// Fatal before the commit point: no partial document exists.
	assert.Zero(t, store.count())
}

func TestIngest_ExtractionTimeout(t *testing.T) {
	store := newIngestMockStore()
	svc := NewIngestService(&ingestMockRegistry{block: true}, store, newIngestMockIndex(), 20*time.Millisecond)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsExtractionError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, store.count())
}

func TestIngest_CallerCancellation(t *testing.T) {
	store := newIngestMockStore()
	svc := NewIngestService(&ingestMockRegistry{block: true}, store, newIngestMockIndex(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result, err := svc.Ingest(ctx, testArtifact())
	require.Error(t, err)
	assert.Nil(t, result)

	// The allocated identifier, if any, left no trace.
	assert.Zero(t, store.count())
}

func TestIngest_StoreFailure(t *testing.T) {
	store := newIngestMockStore()
	store.putErr = errors.New("backend unavailable")
	svc := NewIngestService(&ingestMockRegistry{text: "text"}, store, newIngestMockIndex(), 0)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsStoreError(err))
}

func TestIngest_IndexFailureIsAbsorbed(t *testing.T) {
	store := newIngestMockStore()
	index := newIngestMockIndex()
	index.indexErr = &domain.IndexingError{Op: "index", Cause: errors.New("engine down")}
	svc := NewIngestService(&ingestMockRegistry{text: "text"}, store, index, 0)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.NoError(t, err)

	// The commit already decided the response; only the flag reports it.
	assert.False(t, result.Indexed)
	doc, err := store.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, "text", doc.Text)
}

func TestIngest_NilIndex(t *testing.T) {
	store := newIngestMockStore()
	svc := NewIngestService(&ingestMockRegistry{text: "text"}, store, nil, 0)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.NoError(t, err)
	assert.False(t, result.Indexed)
	assert.Equal(t, 1, store.count())
}

func TestIngest_MirrorConvergence(t *testing.T) {
	store := newIngestMockStore()
	index := newIngestMockIndex()
	svc := NewIngestService(&ingestMockRegistry{text: "mirrored"}, store, index, 0)

	result, err := svc.Ingest(context.Background(), testArtifact())
	require.NoError(t, err)

	// Store and index agree on the ingested text.
	stored, err := store.Get(context.Background(), result.ID)
	require.NoError(t, err)
	indexed, err := index.Fetch(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Text, indexed.Text)
}
