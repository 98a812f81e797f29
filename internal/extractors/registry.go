package extractors

import (
	"context"
	"sort"
	"sync"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driven"
	"github.com/docstash/docstash/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches artifacts to extractors by declared MIME type.
// Selection is a table lookup, not a chain of string comparisons:
// a dedicated extractor wins over the fallback, and among dedicated
// extractors the highest priority wins.
type Registry struct {
	mu        sync.RWMutex
	byMIME    map[string][]driven.Extractor
	fallbacks []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string][]driven.Extractor),
	}
}

// Register adds an extractor to the registry.
// Extractors declaring no MIME types become fallbacks.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mimeTypes := extractor.SupportedMIMETypes()
	if len(mimeTypes) == 0 {
		r.fallbacks = append(r.fallbacks, extractor)
		sortByPriority(r.fallbacks)
		return
	}

	for _, mt := range mimeTypes {
		r.byMIME[mt] = append(r.byMIME[mt], extractor)
		sortByPriority(r.byMIME[mt])
	}
}

// Extract runs the best matching extractor for the artifact.
func (r *Registry) Extract(ctx context.Context, artifact *domain.Artifact) (string, error) {
	if artifact == nil {
		return "", domain.ErrInvalidInput
	}

	extractor, err := r.selectExtractor(artifact.MIMEType)
	if err != nil {
		return "", err
	}

	logger.Debug("Extracting %q (%s)", artifact.FileName, artifact.MIMEType)
	return extractor.Extract(ctx, artifact)
}

// SupportedMIMETypes returns all MIME types with a dedicated extractor.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mt := range r.byMIME {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// selectExtractor picks the dedicated extractor for the MIME type,
// falling back to the highest-priority fallback for everything else,
// including an absent content type.
func (r *Registry) selectExtractor(mimeType string) (driven.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if candidates, ok := r.byMIME[mimeType]; ok && len(candidates) > 0 {
		return candidates[0], nil
	}
	if len(r.fallbacks) > 0 {
		return r.fallbacks[0], nil
	}
	return nil, domain.ErrUnsupportedType
}

func sortByPriority(extractors []driven.Extractor) {
	sort.SliceStable(extractors, func(i, j int) bool {
		return extractors[i].Priority() > extractors[j].Priority()
	})
}
