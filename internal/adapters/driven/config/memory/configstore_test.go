package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("branding.company_name", "Acme"))

	val, ok := store.Get("branding.company_name")
	assert.True(t, ok)
	assert.Equal(t, "Acme", val)
	assert.Equal(t, "Acme", store.GetString("branding.company_name"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestNewConfigStoreWith_CopiesSeed(t *testing.T) {
	seed := map[string]any{"output.format": "text"}
	store := NewConfigStoreWith(seed)
	seed["output.format"] = "pdf"

	assert.Equal(t, "text", store.GetString("output.format"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"int":        42,
		"int64":      int64(7),
		"float":      float64(3.9),
		"int_str":    " 12 ",
		"bad_int":    "twelve",
		"bool":       true,
		"bool_str":   "true",
		"bad_bool":   "yes please",
		"slice":      []string{"collapse", "linetrim"},
		"any_slice":  []any{"collapse", 3, "linetrim"},
		"csv":        "collapse, linetrim,",
		"not_string": 5,
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", store.GetInt("int"), 42},
		{"int64", store.GetInt("int64"), 7},
		{"float truncates", store.GetInt("float"), 3},
		{"int from string", store.GetInt("int_str"), 12},
		{"bad int", store.GetInt("bad_int"), 0},
		{"missing int", store.GetInt("missing"), 0},
		{"bool", store.GetBool("bool"), true},
		{"bool from string", store.GetBool("bool_str"), true},
		{"bad bool", store.GetBool("bad_bool"), false},
		{"string of non-string", store.GetString("not_string"), ""},
		{"slice", store.GetStringSlice("slice"), []string{"collapse", "linetrim"}},
		{"any slice skips non-strings", store.GetStringSlice("any_slice"), []string{"collapse", "linetrim"}},
		{"csv", store.GetStringSlice("csv"), []string{"collapse", "linetrim"}},
		{"missing slice", store.GetStringSlice("missing"), []string(nil)},
		{"slice of non-slice", store.GetStringSlice("int"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"p": []string{"a"}})

	got := store.GetStringSlice("p")
	got[0] = "changed"

	assert.Equal(t, []string{"a"}, store.GetStringSlice("p"))
}

func TestConfigStore_PersistenceIsNoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("k", "v")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('A'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt("key-"+string(rune('A'+i))))
	}
}
