// Package cli wires the document pipeline behind cobra commands.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docstash/docstash/internal/adapters/driven/config/file"
	"github.com/docstash/docstash/internal/adapters/driven/engine"
	"github.com/docstash/docstash/internal/adapters/driven/engine/poppler"
	"github.com/docstash/docstash/internal/adapters/driven/engine/tesseract"
	"github.com/docstash/docstash/internal/adapters/driven/index/bleveindex"
	"github.com/docstash/docstash/internal/adapters/driven/storage/memory"
	"github.com/docstash/docstash/internal/adapters/driven/storage/sqlite"
	"github.com/docstash/docstash/internal/core/ports/driven"
	"github.com/docstash/docstash/internal/core/ports/driving"
	"github.com/docstash/docstash/internal/core/services"
	"github.com/docstash/docstash/internal/extractors"
	"github.com/docstash/docstash/internal/extractors/ocr"
	"github.com/docstash/docstash/internal/extractors/pdf"
	"github.com/docstash/docstash/internal/logger"
)

var (
	verbose   bool
	configDir string
	useMemory bool

	cfg *file.Config

	docStore    driven.DocumentStore
	searchIndex driven.SearchIndex

	// ownsResources is true when initServices opened the store and
	// index itself, so shutdown knows to close them.
	ownsResources bool

	ingestService   driving.Ingestor
	documentService driving.DocumentService
	searchService   driving.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "docstash",
	Short: "Ingest, store, and search scanned documents",
	Long: `docstash extracts text from uploaded documents, persists them,
and mirrors them into a keyword search index.

PDF files go through a page extractor; everything else goes through OCR.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initServices,
	PersistentPostRunE: shutdown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docstash)")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use in-memory storage (nothing is persisted)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the adapter stack and the services on top of it.
func initServices(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)

	// version and tools need no storage.
	if cmd.Name() == "version" || cmd.Name() == "tools" {
		return nil
	}

	// Already wired (tests inject their own stack).
	if ingestService != nil {
		return nil
	}

	var err error
	cfg, err = file.Load(configDir)
	if err != nil {
		return err
	}

	if useMemory {
		docStore = memory.NewDocumentStore()
		searchIndex, err = bleveindex.New("")
		if err != nil {
			return err
		}
	} else {
		dataDir, err := cfg.ResolveDataDir()
		if err != nil {
			return err
		}
		docStore, err = sqlite.NewStore(dataDir)
		if err != nil {
			return err
		}
		searchIndex, err = bleveindex.New(filepath.Join(dataDir, "search.bleve"))
		if err != nil {
			_ = docStore.Close()
			return err
		}
	}

	runner := engine.NewExecRunner()
	registry := extractors.NewRegistry()
	registry.Register(pdf.New(poppler.NewWithRunner(cfg.PdftotextBinary, runner)))
	registry.Register(ocr.NewWithLanguage(tesseract.NewWithRunner(cfg.TesseractBinary, runner), cfg.OCRLanguage))

	ingestService = services.NewIngestService(registry, docStore, searchIndex, cfg.Timeout())
	documentService = services.NewDocumentService(docStore, searchIndex)
	searchService = services.NewSearchService(searchIndex)
	ownsResources = true
	return nil
}

func shutdown(cmd *cobra.Command, args []string) error {
	if !ownsResources {
		return nil
	}
	ownsResources = false
	if searchIndex != nil {
		if err := searchIndex.Close(); err != nil {
			logger.Warn("Closing search index: %v", err)
		}
	}
	if docStore != nil {
		if err := docStore.Close(); err != nil {
			logger.Warn("Closing document store: %v", err)
		}
	}
	return nil
}
