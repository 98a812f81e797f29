package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docstash/docstash/internal/core/domain"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a stored document",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %s not found", args[0])
		}
		return fmt.Errorf("get failed: %w", err)
	}

	if getJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("ID:         %s\n", doc.ID)
	cmd.Printf("File:       %s\n", doc.FileName)
	cmd.Printf("Created:    %s\n", doc.CreatedAt.Format(time.RFC3339))
	cmd.Printf("Highlights: %d\n", len(doc.Highlights))
	cmd.Println()
	cmd.Println(doc.Text)
	return nil
}
