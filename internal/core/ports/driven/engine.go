package driven

import "context"

// OCREngine recognizes text in image bytes. Engine internals (models,
// accuracy, languages beyond the configured one) are out of scope; the
// core consumes it as an opaque capability.
type OCREngine interface {
	// Recognize returns the recognized text for the image bytes.
	// Progress, if the engine reports any, is delivered through the
	// optional callback and carries no meaning for the result.
	Recognize(ctx context.Context, image []byte, language string, progress func(string)) (string, error)
}

// Page is one page of extracted PDF text.
type Page struct {
	// Number is the 1-based page index.
	Number int

	// Items are the text fragments of the page in reading order.
	Items []string
}

// PageExtractor extracts per-page text from PDF bytes.
// Content-stream parsing internals are out of scope.
type PageExtractor interface {
	// ExtractPages returns the pages in ascending page order.
	ExtractPages(ctx context.Context, pdf []byte) ([]Page, error)
}

// CommandRunner executes an external tool and returns its stdout.
// Adapters that shell out to system binaries take a runner so tests
// can substitute a double.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}
