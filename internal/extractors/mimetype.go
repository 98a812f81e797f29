package extractors

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectMIMEType maps a file name to a declared content type by
// extension. Unknown extensions yield an empty type, which routes the
// artifact to the fallback extractor.
func DetectMIMEType(path string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		return ""
	}
	// Strip parameters like "; charset=utf-8".
	if base, _, found := strings.Cut(mimeType, ";"); found {
		return strings.TrimSpace(base)
	}
	return mimeType
}
