package postprocessors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// BuilderFunc constructs a clean-up step from the options stored under its
// name in the pipeline config. Numbers may arrive as int, int64 or float64
// depending on which config format they were read from.
type BuilderFunc func(opts map[string]any) (driven.PostProcessor, error)

// Info describes a registered clean-up step for settings screens.
type Info struct {
	Name    string
	Summary string
}

type entry struct {
	summary string
	build   BuilderFunc
}

// Registry holds the clean-up steps a pipeline can be assembled from.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry. Use RegisterDefaults to add the
// built-in steps.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds or replaces a step. The name is what users list under
// extraction.processors.
func (r *Registry) Register(name, summary string, build BuilderFunc) {
	r.entries[name] = entry{summary: summary, build: build}
}

// Build constructs the named step. Unknown names wrap domain.ErrNotFound
// and list what is available.
func (r *Registry) Build(name string, opts map[string]any) (driven.PostProcessor, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: processor %q (available: %s)",
			domain.ErrNotFound, name, strings.Join(r.Names(), ", "))
	}
	return e.build(opts)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered step names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns name and summary for every step, ordered by name.
func (r *Registry) Describe() []Info {
	names := r.Names()
	infos := make([]Info, len(names))
	for i, name := range names {
		infos[i] = Info{Name: name, Summary: r.entries[name].summary}
	}
	return infos
}
