package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/docstash/docstash/internal/core/domain"
)

var highlightsFile string

var highlightsCmd = &cobra.Command{
	Use:   "highlights [doc-id]",
	Short: "Replace a document's highlights",
	Long: `Replaces the stored highlight set of a document with the JSON array
read from --file (or stdin). The previous highlights are discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlights,
}

func init() {
	highlightsCmd.Flags().StringVarP(&highlightsFile, "file", "f", "", "JSON file with the highlight array (default: stdin)")
	rootCmd.AddCommand(highlightsCmd)
}

func runHighlights(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	highlights, err := readHighlights(cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := documentService.ReplaceHighlights(context.Background(), args[0], highlights); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %s not found", args[0])
		}
		return fmt.Errorf("replacing highlights failed: %w", err)
	}

	cmd.Printf("Replaced highlights for %s (%d entries)\n", args[0], len(highlights))
	return nil
}

func readHighlights(stdin io.Reader) ([]domain.Highlight, error) {
	var data []byte
	var err error
	if highlightsFile != "" {
		data, err = os.ReadFile(highlightsFile)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("reading highlights: %w", err)
	}

	var highlights []domain.Highlight
	if err := json.Unmarshal(data, &highlights); err != nil {
		return nil, fmt.Errorf("parsing highlights: %w", err)
	}
	return highlights, nil
}
