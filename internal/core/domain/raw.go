package domain

// RawDocument represents opaque bytes uploaded by the user.
// It is the input to normalisation.
type RawDocument struct {
	// URI is the original location or file name.
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains upload-specific key-value pairs.
	Metadata map[string]any
}
