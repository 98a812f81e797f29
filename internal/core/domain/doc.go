// Package domain defines the core business entities for docstash.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Artifact: Uploaded bytes plus declared content type, not yet stored
//   - Document: The durable record of extracted text and highlights
//   - Highlight: An opaque user annotation, replaced wholesale on update
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
