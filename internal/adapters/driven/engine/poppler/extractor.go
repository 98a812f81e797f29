// Package poppler adapts poppler's pdftotext CLI as a PageExtractor.
package poppler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docstash/docstash/internal/adapters/driven/engine"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// DefaultBinary is the pdftotext executable name.
const DefaultBinary = "pdftotext"

// ErrPDFToolNotFound indicates the pdftotext binary is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// Extractor runs pdftotext over stdin/stdout. pdftotext separates pages
// with form feeds, which the adapter maps back to per-page items.
type Extractor struct {
	binary string
	runner driven.CommandRunner
}

// New creates a pdftotext extractor using the default binary and runner.
func New() *Extractor {
	return NewWithRunner(DefaultBinary, engine.NewExecRunner())
}

// NewWithRunner creates a pdftotext extractor with an explicit binary
// name and command runner. Tests inject a mock runner here.
func NewWithRunner(binary string, runner driven.CommandRunner) *Extractor {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Extractor{binary: binary, runner: runner}
}

// ExtractPages runs pdftotext and splits its output into pages.
// Items are the non-empty lines of each page in reading order.
func (e *Extractor) ExtractPages(ctx context.Context, pdf []byte) ([]driven.Page, error) {
	// "-" twice: read the PDF from stdin, write text to stdout.
	out, err := e.runner.Run(ctx, pdf, e.binary, "-", "-")
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", e.binary, err)
	}

	return splitPages(string(out)), nil
}

// splitPages maps pdftotext output to pages. pdftotext emits one form
// feed after every page, so a trailing empty segment is dropped.
func splitPages(text string) []driven.Page {
	segments := strings.Split(text, "\f")
	if n := len(segments); n > 0 && strings.TrimSpace(segments[n-1]) == "" {
		segments = segments[:n-1]
	}

	pages := make([]driven.Page, 0, len(segments))
	for i, segment := range segments {
		var items []string
		for _, line := range strings.Split(segment, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				items = append(items, line)
			}
		}
		pages = append(pages, driven.Page{Number: i + 1, Items: items})
	}
	return pages
}

// CheckAvailable reports whether the pdftotext binary is installed.
func CheckAvailable() error {
	if err := engine.CheckAvailable(DefaultBinary); err != nil {
		return fmt.Errorf("%w: %w", ErrPDFToolNotFound, err)
	}
	return nil
}

// InstallInstructions returns help text for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF ingestion.

  macOS:  brew install poppler
  Debian: apt install poppler-utils
`
}
