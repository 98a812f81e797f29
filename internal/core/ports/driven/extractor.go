package driven

import (
	"context"

	"github.com/docstash/docstash/internal/core/domain"
)

// Extractor turns artifact bytes into plain text.
// Each extractor handles specific MIME types; an extractor that
// declares no MIME types is a fallback accepting every artifact.
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	// Nil or empty means all content types (fallback).
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// MIME-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract produces the plain text for an artifact. Pure function
	// of the artifact; no side effects. Failures wrap into
	// *domain.ExtractionError.
	Extract(ctx context.Context, artifact *domain.Artifact) (string, error)
}

// ExtractorRegistry selects the extraction strategy for an artifact.
// It maintains a priority-ordered set of extractors and dispatches on
// the declared content type.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor for the artifact.
	Extract(ctx context.Context, artifact *domain.Artifact) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types with a dedicated extractor.
	SupportedMIMETypes() []string
}
