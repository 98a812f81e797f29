package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
	"github.com/docstash/docstash/internal/core/ports/driving"
	"github.com/docstash/docstash/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// DefaultExtractionTimeout bounds a single extraction when the caller
// does not configure one.
const DefaultExtractionTimeout = 2 * time.Minute

// IngestService coordinates the ingestion pipeline: select a strategy,
// extract, allocate an identifier, commit to the document store, then
// mirror into the search index best-effort.
type IngestService struct {
	registry driven.ExtractorRegistry
	docStore driven.DocumentStore
	index    driven.SearchIndex
	timeout  time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewIngestService creates an ingestion coordinator.
// A non-positive extractionTimeout selects DefaultExtractionTimeout.
func NewIngestService(
	registry driven.ExtractorRegistry,
	docStore driven.DocumentStore,
	index driven.SearchIndex,
	extractionTimeout time.Duration,
) *IngestService {
	if extractionTimeout <= 0 {
		extractionTimeout = DefaultExtractionTimeout
	}
	return &IngestService{
		registry: registry,
		docStore: docStore,
		index:    index,
		timeout:  extractionTimeout,
		now:      time.Now,
	}
}

// Ingest runs the pipeline for one artifact.
//
// Extraction happens first and holds no store resources; the document
// store write is the durability commit point. Once it succeeds the
// result is returned even if the index mirror fails. If the caller
// aborts before the commit, nothing becomes visible.
func (s *IngestService) Ingest(ctx context.Context, artifact *domain.Artifact) (*driving.IngestResult, error) {
	if artifact == nil || len(artifact.Content) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Per-request trace id for correlating absorbed indexing failures.
	trace := uuid.New().String()
	logger.Debug("[%s] Ingesting %q (%s, %d bytes)", trace, artifact.FileName, artifact.MIMEType, len(artifact.Content))

	text, err := s.extract(ctx, artifact)
	if err != nil {
		return nil, err
	}

	// The caller may have gone away while extraction ran; in that case
	// no identifier escapes and no write is attempted.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:         domain.NewDocumentID(),
		FileName:   artifact.FileName,
		Text:       text,
		Highlights: []domain.Highlight{},
		CreatedAt:  s.now(),
	}

	if err := s.docStore.Put(ctx, doc); err != nil {
		if domain.IsStoreError(err) {
			return nil, err
		}
		return nil, &domain.StoreError{Op: "put", Cause: err}
	}
	logger.Debug("[%s] Committed document %s", trace, doc.ID)

	indexed := s.mirror(ctx, trace, doc)

	logger.Info("[%s] Ingested %q as %s (indexed=%t)", trace, artifact.FileName, doc.ID, indexed)
	return &driving.IngestResult{ID: doc.ID, Text: text, Indexed: indexed}, nil
}

// extract runs the selected strategy under the configured timeout.
func (s *IngestService) extract(ctx context.Context, artifact *domain.Artifact) (string, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.registry.Extract(extractCtx, artifact)
	if err != nil {
		// A timeout is an extraction failure, not a silent hang.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(extractCtx.Err(), context.DeadlineExceeded) {
			return "", domain.NewExtractionError(fmt.Errorf("timed out after %s: %w", s.timeout, err))
		}
		if domain.IsExtractionError(err) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrUnsupportedType) {
			return "", err
		}
		return "", domain.NewExtractionError(err)
	}
	return text, nil
}

// mirror writes the document into the search index. Failures are
// absorbed: logged, reported through the returned flag, and never
// allowed to unwind the committed store state.
func (s *IngestService) mirror(ctx context.Context, trace string, doc *domain.Document) bool {
	if s.index == nil {
		return false
	}
	if err := s.index.Index(ctx, doc); err != nil {
		logger.Warn("[%s] Indexing %s failed: %v", trace, doc.ID, err)
		return false
	}
	return true
}
