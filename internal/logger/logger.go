// Package logger provides verbose logging for the orderform CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr so users can see which labels matched and why
// a value was skipped.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write holds the exclusive lock so concurrent messages never interleave
// on a shared writer.
func write(level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { write("DEBUG", "", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { write("INFO", "", format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { write("WARN", "", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Scoped prefixes every message with a component name, e.g.
// "[WARN] extract: ...".
type Scoped struct {
	prefix string
}

// Component returns a logger for the named component.
func Component(name string) Scoped {
	return Scoped{prefix: name + ": "}
}

// Debug prints a message if verbose mode is enabled.
func (s Scoped) Debug(format string, args ...any) { write("DEBUG", s.prefix, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func (s Scoped) Info(format string, args ...any) { write("INFO", s.prefix, format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func (s Scoped) Warn(format string, args ...any) { write("WARN", s.prefix, format, args...) }
