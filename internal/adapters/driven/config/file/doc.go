// Package file persists settings to ~/.orderform/config.toml.
//
// Keys are dotted paths in memory and nested tables on disk. Writes go to
// a temporary sibling that is renamed over the original, so a crash never
// leaves a truncated config behind.
package file
