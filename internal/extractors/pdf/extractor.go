package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Output format constants. The page-count header and per-page markers
// are part of the observable contract: callers and tests rely on them.
const (
	totalPagesFormat = "Total pages: %d\n\n"
	pageMarkerFormat = "Page %d:\n"
)

// Extractor handles PDF documents through a PageExtractor collaborator.
type Extractor struct {
	pages driven.PageExtractor
}

// New creates a PDF extractor backed by the given page extractor.
func New(pages driven.PageExtractor) *Extractor {
	return &Extractor{pages: pages}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // MIME-specific extractor
}

// Extract concatenates per-page text in page order. The output starts
// with a header stating the total page count, and each page is preceded
// by a marker carrying its 1-based index.
func (e *Extractor) Extract(ctx context.Context, artifact *domain.Artifact) (string, error) {
	if artifact == nil {
		return "", domain.ErrInvalidInput
	}

	pages, err := e.pages.ExtractPages(ctx, artifact.Content)
	if err != nil {
		return "", domain.NewExtractionError(fmt.Errorf("extract pages: %w", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, totalPagesFormat, len(pages))

	for _, page := range pages {
		fmt.Fprintf(&b, pageMarkerFormat, page.Number)
		b.WriteString(strings.Join(page.Items, " "))
		b.WriteString("\n\n")
	}

	return b.String(), nil
}
