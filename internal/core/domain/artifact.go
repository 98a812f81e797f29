package domain

// Artifact represents an uploaded document before extraction.
// It is transient: the pipeline reads it once and never retains it.
type Artifact struct {
	// FileName is the original name of the uploaded file.
	FileName string

	// MIMEType is the declared content type (e.g., "application/pdf").
	// May be empty when the caller did not declare one.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
