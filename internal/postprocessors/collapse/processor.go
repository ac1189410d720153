// Package collapse provides a processor that normalises runs of whitespace.
package collapse

import (
	"context"
	"regexp"
	"strings"
)

// Name is the registry name of the processor.
const Name = "collapse"

// DefaultMaxBlankLines is the default number of consecutive blank lines kept.
const DefaultMaxBlankLines = 1

var spaceRun = regexp.MustCompile(`[ \t\x{00a0}\x{2007}\x{202f}]{2,}|[\t\x{00a0}\x{2007}\x{202f}]`)

// Processor replaces runs of horizontal whitespace inside a line with a
// single space and limits consecutive blank lines. Newlines themselves
// are never joined, so label lines stay separate. It implements the
// PostProcessor interface.
type Processor struct {
	maxBlankLines int
}

// Option configures the collapse processor.
type Option func(*Processor)

// WithMaxBlankLines sets how many consecutive blank lines survive.
func WithMaxBlankLines(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.maxBlankLines = n
		}
	}
}

// New creates a new collapse processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{maxBlankLines: DefaultMaxBlankLines}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process collapses whitespace in content.
func (p *Processor) Process(_ context.Context, content string) (string, error) {
	if content == "" {
		return "", nil
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = spaceRun.ReplaceAllString(line, " ")
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > p.maxBlankLines {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), nil
}
