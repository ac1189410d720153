// Package linetrim provides a processor that trims whitespace from each line.
package linetrim

import (
	"context"
	"strings"
)

// Name is the registry name of the processor.
const Name = "linetrim"

// Processor removes trailing whitespace from every line and, optionally,
// leading whitespace too. It implements the PostProcessor interface.
type Processor struct {
	leading bool
}

// Option configures the line trim processor.
type Option func(*Processor)

// WithLeading controls whether leading whitespace is removed.
func WithLeading(leading bool) Option {
	return func(p *Processor) {
		p.leading = leading
	}
}

// New creates a new line trim processor. Leading whitespace is removed
// by default.
func New(opts ...Option) *Processor {
	p := &Processor{leading: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process trims each line of content. Line count is preserved.
func (p *Processor) Process(_ context.Context, content string) (string, error) {
	if content == "" {
		return "", nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r\u00a0")
		if p.leading {
			line = strings.TrimLeft(line, " \t\u00a0")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n"), nil
}
