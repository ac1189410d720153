package driven

import (
	"context"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// PostProcessor rewrites normalised text before field extraction.
// PostProcessors are chained in a pipeline (e.g., whitespace collapse, line trim).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the rewritten content.
	Process(ctx context.Context, content string) (string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document content through all processors in order
	// and returns the final text.
	Process(ctx context.Context, doc *domain.Document) (string, error)
}
