package driving

import (
	"context"

	"github.com/docstash/docstash/internal/core/domain"
)

// IngestResult is what an ingestion returns to the caller once the
// document store commit has succeeded.
type IngestResult struct {
	// ID is the identifier assigned to the new document.
	ID string

	// Text is the extracted plain text, identical to what a Get
	// for the same ID returns.
	Text string

	// Indexed reports whether the best-effort search index mirror
	// succeeded. False never means the ingestion failed.
	Indexed bool
}

// Ingestor accepts artifacts and turns them into durable documents.
type Ingestor interface {
	// Ingest extracts text from the artifact, persists a new document
	// and mirrors it into the search index. The store write is the
	// commit point: once it succeeds the result is returned even if
	// indexing failed.
	Ingest(ctx context.Context, artifact *domain.Artifact) (*IngestResult, error)
}
