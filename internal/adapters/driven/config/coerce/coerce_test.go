package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	tests := map[string]struct {
		in   any
		want int
	}{
		"int":             {42, 42},
		"int64 from toml": {int64(7), 7},
		"float64 json":    {float64(3.9), 3},
		"padded string":   {" 12 ", 12},
		"bad string":      {"twelve", 0},
		"nil":             {nil, 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Int(tt.in))
		})
	}
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.True(t, Bool(" true"))
	assert.True(t, Bool("1"))
	assert.False(t, Bool("maybe"))
	assert.False(t, Bool(nil))
}

func TestString(t *testing.T) {
	assert.Equal(t, "Acme", String("Acme"))
	assert.Equal(t, "", String(42))
	assert.Equal(t, "", String(nil))
}

func TestStringSlice(t *testing.T) {
	src := []string{"collapse"}
	got := StringSlice(src)
	got[0] = "changed"
	assert.Equal(t, "collapse", src[0])

	assert.Equal(t, []string{"collapse", "linetrim"}, StringSlice([]any{"collapse", 3, "linetrim"}))
	assert.Equal(t, []string{"collapse", "linetrim"}, StringSlice(" collapse, ,linetrim "))
	assert.Nil(t, StringSlice(42))
	assert.Nil(t, StringSlice(nil))
}
