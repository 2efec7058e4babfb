package indexer

import (
	"context"
	"crypto/sha256"
)

// Dimension matches the OpenAI text-embedding vector size so the index
// can later be refilled from a real embedding model without recreation.
const Dimension = 1536

// Embedder turns text into a fixed-size vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

var _ Embedder = (*HashEmbedder)(nil)

// HashEmbedder derives a deterministic pseudo-embedding from the SHA-256
// digest of the text. It carries no semantic signal; identical texts map
// to identical vectors, which is enough for exact-duplicate recall and
// for exercising the index in tests and demos.
type HashEmbedder struct{}

func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

func (e *HashEmbedder) Dimension() int {
	return Dimension
}

func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	digest := sha256.Sum256([]byte(text))

	// Each component is a digest byte rescaled from [0,255] to [-1,1].
	vector := make([]float32, Dimension)
	for i := range vector {
		vector[i] = float32(digest[i%len(digest)])/255.0*2 - 1
	}
	return vector, nil
}
