package cli

import (
	"github.com/spf13/cobra"

	"github.com/docstash/docstash/internal/adapters/driven/engine/poppler"
	"github.com/docstash/docstash/internal/adapters/driven/engine/tesseract"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Check that the extraction tools are installed",
	Run:   runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, _ []string) {
	if err := tesseract.CheckAvailable(); err != nil {
		cmd.Printf("tesseract:  missing (%v)\n", err)
		cmd.Println(tesseract.InstallInstructions())
	} else {
		cmd.Println("tesseract:  ok")
	}

	if err := poppler.CheckAvailable(); err != nil {
		cmd.Printf("pdftotext:  missing (%v)\n", err)
		cmd.Println(poppler.InstallInstructions())
	} else {
		cmd.Println("pdftotext:  ok")
	}
}
