// Package postprocessors provides text clean-up implementations that run
// between normalisation and field extraction.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple PostProcessors and runs them in order.
// It implements the PostProcessorPipeline interface.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// BuildPipeline constructs a pipeline from configuration. Names the
// registry does not know, or whose builders fail, are skipped with a
// warning so a stale config never blocks an import.
func BuildPipeline(r *Registry, cfg domain.PipelineConfig) *Pipeline {
	p := NewPipeline()
	for _, name := range cfg.Processors {
		processor, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			logger.Warn("skipping processor %s: %v", name, err)
			continue
		}
		p.Add(processor)
	}
	return p
}

// Process runs the document content through all processors in order.
// Each processor receives the output of the previous one.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	content := doc.Content
	for _, processor := range p.processors {
		var err error
		content, err = processor.Process(ctx, content)
		if err != nil {
			return "", fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return content, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
