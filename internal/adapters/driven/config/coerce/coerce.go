// Package coerce reads typed settings out of loosely typed config values.
// TOML decodes integers as int64, JSON as float64, and values set from the
// command line arrive as strings; every config store reads through here so
// they agree on the result.
package coerce

import (
	"strings"

	"github.com/spf13/cast"
)

// String returns v when it is a string and "" otherwise.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int converts numbers and numeric strings. Anything else is 0.
func Int(v any) int {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Bool converts booleans and strings such as "true" or "1". Anything else
// is false.
func Bool(v any) bool {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}

// StringSlice returns a copy of a string list. Lists decoded as []any keep
// only their string items, and a single string is split on commas. Other
// values yield nil.
func StringSlice(v any) []string {
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}
