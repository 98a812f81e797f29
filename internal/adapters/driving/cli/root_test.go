package cli

import (
	"context"
	"strings"

	"github.com/docstash/docstash/internal/adapters/driven/index/bleveindex"
	"github.com/docstash/docstash/internal/adapters/driven/storage/memory"
	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/services"
	"github.com/docstash/docstash/internal/extractors"
)

// stubExtractor is a fallback extractor returning the artifact content
// as text, so command tests run without external tools.
type stubExtractor struct{}

func (stubExtractor) SupportedMIMETypes() []string { return nil }
func (stubExtractor) Priority() int                { return 5 }

func (stubExtractor) Extract(_ context.Context, artifact *domain.Artifact) (string, error) {
	return strings.TrimSpace(string(artifact.Content)), nil
}

// setupTestServices wires the commands to an in-memory stack. The
// returned cleanup tears it down and resets flag state.
func setupTestServices() func() {
	store := memory.NewDocumentStore()
	index, err := bleveindex.New("")
	if err != nil {
		panic(err)
	}

	registry := extractors.NewRegistry()
	registry.Register(stubExtractor{})

	docStore = store
	searchIndex = index
	ingestService = services.NewIngestService(registry, store, index, 0)
	documentService = services.NewDocumentService(store, index)
	searchService = services.NewSearchService(index)

	return func() {
		_ = index.Close()
		docStore = nil
		searchIndex = nil
		ingestService = nil
		documentService = nil
		searchService = nil

		ingestMIMEType = ""
		ingestConcurrency = 4
		highlightsFile = ""
		getJSON = false
		searchJSON = false
	}
}
