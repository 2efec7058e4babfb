package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndexQueryRanksBySimilarity(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	err := idx.Upsert(ctx, []Vector{
		{ID: "a", Values: []float32{1, 0, 0}, Metadata: map[string]any{"article_id": "art_a"}},
		{ID: "b", Values: []float32{0, 1, 0}},
		{ID: "c", Values: []float32{0.9, 0.1, 0}},
	})
	require.NoError(t, err)

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "c", matches[1].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.Equal(t, "art_a", matches[0].Metadata["article_id"])
}

func TestMemoryIndexUpsertReplaces(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, []Vector{{ID: "a", Values: []float32{1, 0}}}))
	require.NoError(t, idx.Upsert(ctx, []Vector{{ID: "a", Values: []float32{0, 1}}}))
	assert.Equal(t, 1, idx.Len())

	matches, err := idx.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestMemoryIndexDeleteIgnoresUnknownIDs(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, []Vector{
		{ID: "a", Values: []float32{1, 0}},
		{ID: "b", Values: []float32{0, 1}},
	}))

	require.NoError(t, idx.Delete(ctx, []string{"a", "missing"}))
	assert.Equal(t, 1, idx.Len())
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, cosineSimilarity([]float32{1}, []float32{1, 2}))
}
