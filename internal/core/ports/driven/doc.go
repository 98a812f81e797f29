// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Turns artifact bytes into plain text for one content type
//   - ExtractorRegistry: Selects the extraction strategy per artifact
//   - DocumentStore: The authoritative keyed document persistence
//   - SearchIndex: A best-effort full-text mirror of the document store
//
// # Collaborator Interfaces
//
// The extraction strategies consume these opaque capability providers;
// their internals are out of scope for the core:
//
//   - OCREngine: Optical character recognition over image bytes
//   - PageExtractor: Per-page text extraction from PDF bytes
//   - CommandRunner: Executes external tools, injectable for tests
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
