package vector

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

var embedTokenPattern = regexp.MustCompile(`[\pL\pN]+`)

// HashEmbedder is a deterministic bag-of-words Embedder: each
// lowercase token is hashed into one of a fixed number of buckets and
// the bucket counts are normalized to unit length. Texts sharing
// vocabulary land near each other, which is all the summary search
// needs; no model, no network.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder creates a new HashEmbedder with the specified
// dimensions.
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &HashEmbedder{
		dimensions: dimensions,
	}
}

// Initialize sets up the embedder with any required configuration.
func (e *HashEmbedder) Initialize() error {
	return nil // No initialization needed for the hash embedder
}

// CreateEmbedding generates an embedding for the given text. The same
// text always produces the same embedding.
func (e *HashEmbedder) CreateEmbedding(text string) ([]float32, error) {
	embedding := make([]float32, e.dimensions)

	for _, token := range embedTokenPattern.FindAllString(strings.ToLower(text), -1) {
		h := fnv.New32a()
		h.Write([]byte(token))
		embedding[int(h.Sum32())%e.dimensions]++
	}

	normalizeEmbedding(embedding)

	return embedding, nil
}

// normalizeEmbedding normalizes the embedding to have unit length.
// The zero vector (empty text) is left as-is.
func normalizeEmbedding(embedding []float32) {
	var sumSquares float32
	for _, val := range embedding {
		sumSquares += val * val
	}
	if sumSquares == 0 {
		return
	}

	magnitude := float32(math.Sqrt(float64(sumSquares)))
	for i := range embedding {
		embedding[i] /= magnitude
	}
}
