// Package normalisers provides implementations of the Normaliser interface
// for the upload formats the wizard accepts. Each normaliser knows how to
// extract text content from a specific MIME type.
//
// Normalisers are registered with a Registry at startup, usually via
// RegisterDefaults.
package normalisers
