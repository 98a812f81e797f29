package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

func testDocument(id string) *domain.Document {
	return &domain.Document{
		ID:        id,
		FileName:  "report.pdf",
		Text:      "Total pages: 1\n\nPage 1:\nhello\n\n",
		CreatedAt: time.Now(),
	}
}

func TestPutAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, store.Put(ctx, doc))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.FileName, got.FileName)
	assert.Equal(t, doc.Text, got.Text)
	assert.Empty(t, got.Highlights)
}

func TestPut_InvalidInput(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, &domain.Document{}), domain.ErrInvalidInput)
}

func TestPut_Overwrites(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testDocument("doc-1")))
	updated := testDocument("doc-1")
	updated.Text = "replaced"
	require.NoError(t, store.Put(ctx, updated))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "replaced", got.Text)
}

func TestGet_NotFound(t *testing.T) {
	store := NewDocumentStore()

	doc, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestReplaceHighlights(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	original := testDocument("doc-1")
	require.NoError(t, store.Put(ctx, original))

	highlights := []domain.Highlight{
		{"start": 0, "end": 5, "label": "greeting"},
	}
	require.NoError(t, store.ReplaceHighlights(ctx, "doc-1", highlights))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, highlights, got.Highlights)

	// Only the highlights changed.
	assert.Equal(t, original.Text, got.Text)
	assert.Equal(t, original.FileName, got.FileName)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)
}

func TestReplaceHighlights_NotFound(t *testing.T) {
	store := NewDocumentStore()

	err := store.ReplaceHighlights(context.Background(), "missing", []domain.Highlight{{"a": 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The failed update left no trace.
	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceHighlights_Wholesale(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testDocument("doc-1")))
	require.NoError(t, store.ReplaceHighlights(ctx, "doc-1", []domain.Highlight{{"n": 1}, {"n": 2}}))
	require.NoError(t, store.ReplaceHighlights(ctx, "doc-1", []domain.Highlight{{"n": 3}}))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)

	// Replaced, not merged.
	require.Len(t, got.Highlights, 1)
	assert.Equal(t, domain.Highlight{"n": 3}, got.Highlights[0])
}

func TestReplaceHighlights_ConcurrentSameKey(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, testDocument("doc-1")))

	const writers = 16
	payloads := make([][]domain.Highlight, writers)
	for i := range payloads {
		payloads[i] = []domain.Highlight{{"writer": fmt.Sprintf("w%d", i)}}
	}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.ReplaceHighlights(ctx, "doc-1", payloads[i]))
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)

	// The final state is exactly one of the payloads, never a merge.
	require.Len(t, got.Highlights, 1)
	assert.Contains(t, payloads, got.Highlights)
}

func TestGet_ReturnsCopy(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testDocument("doc-1")))
	require.NoError(t, store.ReplaceHighlights(ctx, "doc-1", []domain.Highlight{{"n": 1}}))

	first, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)

	require.NoError(t, store.ReplaceHighlights(ctx, "doc-1", []domain.Highlight{{"n": 2}}))

	// The earlier read is unaffected by the later write.
	require.Len(t, first.Highlights, 1)
	assert.Equal(t, domain.Highlight{"n": 1}, first.Highlights[0])
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.DocumentStore = (*DocumentStore)(nil)
}
