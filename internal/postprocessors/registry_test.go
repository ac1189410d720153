package postprocessors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors/collapse"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors/linetrim"
)

func upper() BuilderFunc {
	return func(map[string]any) (driven.PostProcessor, error) {
		return &mockProcessor{name: "upper"}, nil
	}
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()

	assert.Empty(t, r.Names())
	assert.Empty(t, r.Describe())
	assert.False(t, r.Has(collapse.Name))
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("upper", "shout", upper())

	require.True(t, r.Has("upper"))
	p, err := r.Build("upper", nil)
	require.NoError(t, err)
	assert.Equal(t, "upper", p.Name())
}

func TestRegistry_Build_UnknownListsAvailable(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	_, err := r.Build("dedupe", nil)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `"dedupe"`)
	assert.Contains(t, err.Error(), "collapse, linetrim")
}

func TestRegistry_Describe(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.Register("upper", "shout", upper())

	infos := r.Describe()

	require.Len(t, infos, 3)
	assert.Equal(t, []string{"collapse", "linetrim", "upper"}, r.Names())
	assert.Equal(t, Info{Name: "upper", Summary: "shout"}, infos[2])
	for _, info := range infos {
		assert.NotEmpty(t, info.Summary, info.Name)
	}
}

func TestRegisterDefaults_BuildTypes(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := r.Build(collapse.Name, map[string]any{"max_blank_lines": float64(2)})
	require.NoError(t, err)
	assert.IsType(t, &collapse.Processor{}, p)

	p, err = r.Build(linetrim.Name, map[string]any{"leading": false})
	require.NoError(t, err)
	assert.IsType(t, &linetrim.Processor{}, p)

	_, err = buildCollapse(nil)
	assert.NoError(t, err)
}

func TestGetIntFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		opts   map[string]any
		want   int
		wantOK bool
	}{
		{"int", map[string]any{"n": 3}, 3, true},
		{"int64 from toml", map[string]any{"n": int64(4)}, 4, true},
		{"float64 from json", map[string]any{"n": float64(5)}, 5, true},
		{"string rejected", map[string]any{"n": "6"}, 0, false},
		{"missing", map[string]any{}, 0, false},
		{"nil map", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := getIntFromConfig(tt.opts, "n")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
