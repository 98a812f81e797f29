package domain

// SearchHit is one search result: the matched document and the
// engine's relevance score. Hits are returned in descending
// relevance order; the ranking itself is opaque to the core.
type SearchHit struct {
	// ID is the matched document identifier.
	ID string

	// Document is the indexed copy of the document. The document
	// store holds the authoritative version.
	Document Document

	// Score is the engine's relevance score.
	Score float64
}
