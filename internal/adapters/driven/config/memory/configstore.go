// Package memory provides an in-memory ConfigStore used by tests and by
// --ephemeral runs that must not touch ~/.orderform.
package memory

import (
	"sync"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/config/coerce"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in a map. String values are coerced on
// read so that values seeded from flags or environment variables behave
// like their TOML counterparts.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWith(nil)
}

// NewConfigStoreWith creates a store pre-populated with seed.
func NewConfigStoreWith(seed map[string]any) *ConfigStore {
	values := make(map[string]any, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &ConfigStore{values: values}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value at key when it is a string.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	return coerce.String(val)
}

// GetInt returns the value at key as an int, or 0.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	return coerce.Int(val)
}

// GetBool returns the value at key as a bool, or false.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	return coerce.Bool(val)
}

// GetStringSlice returns the value at key as a list. A comma separated
// string is split into its parts.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	return coerce.StringSlice(val)
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path returns the pseudo path ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
