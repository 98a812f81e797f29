// Package tesseract adapts the tesseract CLI as an OCREngine.
package tesseract

import (
	"context"
	"errors"
	"fmt"

	"github.com/docstash/docstash/internal/adapters/driven/engine"
	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// DefaultBinary is the tesseract executable name.
const DefaultBinary = "tesseract"

// ErrOCRToolNotFound indicates the tesseract binary is not installed.
var ErrOCRToolNotFound = errors.New("tesseract not found in PATH")

// Engine runs tesseract over stdin/stdout.
type Engine struct {
	binary string
	runner driven.CommandRunner
}

// New creates a tesseract engine using the default binary and runner.
func New() *Engine {
	return NewWithRunner(DefaultBinary, engine.NewExecRunner())
}

// NewWithRunner creates a tesseract engine with an explicit binary name
// and command runner. Tests inject a mock runner here.
func NewWithRunner(binary string, runner driven.CommandRunner) *Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Engine{binary: binary, runner: runner}
}

// Recognize feeds the image to tesseract and returns the recognized
// text. Tesseract reports no structured progress over this interface,
// so the callback only receives start and end notifications.
func (e *Engine) Recognize(ctx context.Context, image []byte, language string, progress func(string)) (string, error) {
	if progress != nil {
		progress("recognizing")
	}

	// "stdin" / "stdout" are tesseract's markers for pipe I/O.
	out, err := e.runner.Run(ctx, image, e.binary, "stdin", "stdout", "-l", language)
	if err != nil {
		return "", fmt.Errorf("running %s: %w", e.binary, err)
	}

	if progress != nil {
		progress("done")
	}
	return string(out), nil
}

// CheckAvailable reports whether the tesseract binary is installed.
func CheckAvailable() error {
	if err := engine.CheckAvailable(DefaultBinary); err != nil {
		return fmt.Errorf("%w: %w", ErrOCRToolNotFound, err)
	}
	return nil
}

// InstallInstructions returns help text for installing tesseract.
func InstallInstructions() string {
	return `tesseract is required for image ingestion.

  macOS:  brew install tesseract
  Debian: apt install tesseract-ocr
`
}
