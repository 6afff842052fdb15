// Package vector provides interfaces and utilities for vector operations
// and text embedding within the docsum service.
package vector

const (
	// DefaultEmbeddingDimensions defines the standard size of embedding
	// vectors. 256 hashed token buckets are plenty to separate the
	// summaries of one store.
	DefaultEmbeddingDimensions = 256
)

// Embedder defines the interface for creating vector embeddings from text.
type Embedder interface {
	// CreateEmbedding converts text into a vector representation.
	CreateEmbedding(text string) ([]float32, error)

	// Initialize sets up the embedder with any required configuration.
	Initialize() error
}
