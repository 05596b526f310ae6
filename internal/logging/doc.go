// Package logging provides a unified logging interface for the sequence service.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends.
package logging
