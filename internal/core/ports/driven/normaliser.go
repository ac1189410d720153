package driven

import (
	"context"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// Normaliser turns an imported deal document into plain text that the
// field extractor can scan line by line.
type Normaliser interface {
	// SupportedMIMETypes lists the document types this normaliser reads.
	SupportedMIMETypes() []string

	// Priority breaks ties when several normalisers accept a MIME type.
	// Format readers use 50 and above, catch-all text readers stay below 10.
	Priority() int

	// Normalise reads raw and returns its text. Line breaks must separate
	// the "Label - Value" pairs found in the source.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult is the text recovered from a document. Whitespace
// clean-up happens later in the PostProcessor pipeline.
type NormaliseResult struct {
	Document domain.Document
}
