// Package extractors provides implementations of the Extractor interface
// and the registry that dispatches artifacts to them. Each extractor
// knows how to obtain plain text from a specific content type; the OCR
// extractor is the fallback for everything without a dedicated one.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
