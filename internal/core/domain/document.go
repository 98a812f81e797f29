package domain

import "time"

// Document is the durable unit of the system: the extracted text of one
// uploaded artifact plus its user-authored highlight annotations.
type Document struct {
	// ID is the unique identifier, assigned once at ingestion.
	ID string

	// FileName is the original artifact name.
	FileName string

	// Text is the extracted plain text. Immutable once written;
	// there is no re-extraction path.
	Text string

	// Highlights are the annotation records for this document.
	// Replaced wholesale on update, never merged.
	Highlights []Highlight

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Highlight is an opaque annotation record. The pipeline stores and
// returns highlights verbatim without interpreting their shape, so
// clients are free to evolve the fields they put in them.
type Highlight map[string]any
