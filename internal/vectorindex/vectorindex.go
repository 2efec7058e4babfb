// Package vectorindex provides the vector similarity index used by
// semantic search. The production backend is Pinecone; an in-memory
// implementation backs tests and local development.
package vectorindex

import "context"

// Vector is one indexed embedding with its payload.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Match is one query result, best first.
type Match struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Index is a vector similarity index. Implementations must be safe for
// concurrent use.
type Index interface {
	// Upsert inserts or replaces the given vectors.
	Upsert(ctx context.Context, vectors []Vector) error
	// Query returns up to topK matches ordered by similarity.
	Query(ctx context.Context, values []float32, topK int) ([]Match, error)
	// Delete removes the vectors with the given IDs. Unknown IDs are
	// ignored.
	Delete(ctx context.Context, ids []string) error
}
