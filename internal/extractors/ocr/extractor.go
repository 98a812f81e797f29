package ocr

import (
	"context"
	"fmt"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
	"github.com/docstash/docstash/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// DefaultLanguage is the recognition language used when none is configured.
const DefaultLanguage = "eng"

// Extractor is the fallback strategy: it runs optical character
// recognition over the artifact bytes. Every content type without a
// dedicated extractor, including an absent one, lands here.
type Extractor struct {
	engine   driven.OCREngine
	language string
}

// New creates an OCR extractor with the default recognition language.
func New(engine driven.OCREngine) *Extractor {
	return NewWithLanguage(engine, DefaultLanguage)
}

// NewWithLanguage creates an OCR extractor with a specific recognition
// language. The language is fixed at construction; it is never chosen
// per request.
func NewWithLanguage(engine driven.OCREngine, language string) *Extractor {
	if language == "" {
		language = DefaultLanguage
	}
	return &Extractor{engine: engine, language: language}
}

// SupportedMIMETypes returns nil: this extractor is the fallback for
// every content type.
func (e *Extractor) SupportedMIMETypes() []string {
	return nil
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract returns the engine's raw recognized text with no added
// structure. Engine progress is forwarded to the debug log only.
func (e *Extractor) Extract(ctx context.Context, artifact *domain.Artifact) (string, error) {
	if artifact == nil {
		return "", domain.ErrInvalidInput
	}

	text, err := e.engine.Recognize(ctx, artifact.Content, e.language, func(progress string) {
		logger.Debug("OCR progress: %s", progress)
	})
	if err != nil {
		return "", domain.NewExtractionError(fmt.Errorf("recognize: %w", err))
	}

	return text, nil
}
