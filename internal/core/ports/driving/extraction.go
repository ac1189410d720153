package driving

import (
	"context"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// ExtractionService recovers order-form fields from documents.
type ExtractionService interface {
	// Extract runs the label heuristic over already-normalised text.
	// It never fails; unrecognised text yields an empty result.
	Extract(text string) domain.ExtractionResult

	// ExtractFile normalises an uploaded file by its name and content,
	// cleans the text and extracts fields from it.
	ExtractFile(ctx context.Context, filename string, content []byte) (*ImportResult, error)
}

// ImportResult describes one processed upload.
type ImportResult struct {
	// Text is the cleaned document text the heuristic ran over.
	Text string

	// Extraction holds the recovered fields.
	Extraction domain.ExtractionResult

	// Merged lists the fields actually copied into a form. It is empty
	// for plain extraction.
	Merged []string
}
