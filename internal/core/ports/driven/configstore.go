package driven

// ConfigStore holds the user's settings as dotted keys such as
// "branding.company_name" or "output.format".
// The file adapter keeps them in ~/.orderform/config.toml.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when absent or not a string.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 when absent or not numeric.
	GetInt(key string) int

	// GetBool returns the value as a bool, or false when absent.
	GetBool(key string) bool

	// GetStringSlice returns a list value. A comma-separated string is split.
	GetStringSlice(key string) []string

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the in-memory values with those in storage.
	Load() error

	// Path returns where the settings live.
	Path() string
}
