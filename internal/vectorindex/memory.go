package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"
)

var _ Index = (*MemoryIndex)(nil)

// MemoryIndex keeps vectors in memory and ranks queries by cosine
// similarity. It backs tests and deployments without Pinecone.
type MemoryIndex struct {
	mu      sync.RWMutex
	vectors map[string]Vector
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		vectors: make(map[string]Vector),
	}
}

func (m *MemoryIndex) Upsert(_ context.Context, vectors []Vector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range vectors {
		m.vectors[v.ID] = v
	}
	return nil
}

func (m *MemoryIndex) Query(_ context.Context, values []float32, topK int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.vectors))
	for _, v := range m.vectors {
		matches = append(matches, Match{
			ID:       v.ID,
			Score:    cosineSimilarity(values, v.Values),
			Metadata: v.Metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *MemoryIndex) Delete(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.vectors, id)
	}
	return nil
}

// Len reports the number of stored vectors.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
