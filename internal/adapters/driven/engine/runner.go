// Package engine provides adapters for the external extraction engines
// the pipeline consumes as opaque capability providers: tesseract for
// optical character recognition and poppler's pdftotext for PDF page
// text. Both shell out through an injectable CommandRunner so tests can
// substitute a double.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/docstash/docstash/internal/core/ports/driven"
)

// Ensure ExecRunner implements the interface.
var _ driven.CommandRunner = (*ExecRunner)(nil)

// ExecRunner runs external tools through os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the named tool with stdin wired to the given bytes and
// returns its stdout. A non-zero exit reports stderr in the error.
func (r *ExecRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// CheckAvailable reports whether the named tool is on PATH.
func CheckAvailable(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return nil
}
