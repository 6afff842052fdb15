// Package summarystore provides storage interfaces and implementations
// for summaries produced by the docsum service.
package summarystore

import (
	"time"
)

// Entry is one stored summary.
type Entry struct {
	ID         string
	SourceHash string
	Summary    string
	Info       string
}

// SummaryStore defines the interface for persisting and retrieving
// produced summaries.
type SummaryStore interface {
	// Initialize initializes the store with configuration options.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// Store persists a summary keyed by id, with the hash of the
	// source text it was derived from.
	Store(id string, sourceHash string, summaryText string, info string, embedding []byte, timestamp time.Time) error

	// Lookup returns the summary previously derived from the source
	// text with the given hash, or nil if none exists.
	Lookup(sourceHash string) (*Entry, error)

	// Search returns the summaries most similar to the given
	// embedding, best first.
	Search(queryEmbedding []float32, limit int) ([]string, error)

	// Delete removes the summary with the given id.
	Delete(id string) error

	// Clear removes all summaries and reports how many were deleted.
	Clear() (int, error)
}
