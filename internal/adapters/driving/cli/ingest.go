package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driving"
	"github.com/docstash/docstash/internal/extractors"
)

var (
	ingestMIMEType    string
	ingestConcurrency int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Extract text from files and add them to the store",
	Long: `Reads each file, extracts its text (page extraction for PDFs,
OCR for everything else), and stores the resulting document.

Multiple files are processed concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestMIMEType, "type", "t", "", "content type override (default: detect by extension)")
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 4, "maximum files processed at once")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	results := make([]*driving.IngestResult, len(args))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(ingestConcurrency)
	for i, path := range args {
		g.Go(func() error {
			result, err := ingestFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	for i, path := range args {
		status := "stored"
		if results[i].Indexed {
			status = "stored and indexed"
		}
		cmd.Printf("%s: %s (%s, %d characters)\n", path, results[i].ID, status, len(results[i].Text))
	}
	return nil
}

func ingestFile(ctx context.Context, path string) (*driving.IngestResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := ingestMIMEType
	if mimeType == "" {
		mimeType = extractors.DetectMIMEType(path)
	}

	artifact := &domain.Artifact{
		FileName: filepath.Base(path),
		MIMEType: mimeType,
		Content:  content,
	}
	return ingestService.Ingest(ctx, artifact)
}
