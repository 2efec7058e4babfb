package indexer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 1500)
	chunks := ChunkText(text)

	require.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[0]), chunkSize)
	// Second chunk starts chunkSize-chunkOverlap runes in.
	assert.Len(t, []rune(chunks[1]), 600)
}

func TestChunkTextShortAndEmpty(t *testing.T) {
	assert.Equal(t, []string{"kurzer Text"}, ChunkText("kurzer Text"))
	assert.Empty(t, ChunkText(""))
	assert.Empty(t, ChunkText("   \n\t  "))
}

func TestHashEmbedderDeterministic(t *testing.T) {
	e := NewHashEmbedder()
	ctx := context.Background()

	a, err := e.Embed(ctx, "Willkommen im Wiki")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "Willkommen im Wiki")
	require.NoError(t, err)
	c, err := e.Embed(ctx, "anderer Text")
	require.NoError(t, err)

	assert.Len(t, a, Dimension)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	for _, v := range a {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestIndexArticleWritesChunkVectors(t *testing.T) {
	idx := vectorindex.NewMemoryIndex()
	ix := NewIndexer(idx, NewHashEmbedder(), logger.NewTestLogger())

	article := &models.Article{
		ArticleID: "art_abc123def456",
		Title:     "Buchungsprozess",
		Content:   strings.Repeat("Inhalt über den Buchungsprozess. ", 200),
	}

	require.NoError(t, ix.IndexArticle(context.Background(), article))
	assert.LessOrEqual(t, idx.Len(), maxChunksPerArticle)
	assert.Greater(t, idx.Len(), 1)

	// Querying with the first chunk's own embedding must return it first.
	chunks := ChunkText(article.Title + "\n\n" + article.Content)
	values, err := NewHashEmbedder().Embed(context.Background(), chunks[0])
	require.NoError(t, err)

	matches, err := idx.Query(context.Background(), values, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, ChunkID(article.ArticleID, 0), matches[0].ID)
	assert.Equal(t, article.ArticleID, matches[0].Metadata["article_id"])
	assert.LessOrEqual(t, len([]rune(matches[0].Metadata["chunk"].(string))), metadataChunkLimit)
}

func TestIndexArticleCapsChunks(t *testing.T) {
	idx := vectorindex.NewMemoryIndex()
	ix := NewIndexer(idx, NewHashEmbedder(), logger.NewTestLogger())

	article := &models.Article{
		ArticleID: "art_ffffffffffff",
		Title:     "Langer Artikel",
		Content:   strings.Repeat("x", 50000),
	}

	require.NoError(t, ix.IndexArticle(context.Background(), article))
	assert.Equal(t, maxChunksPerArticle, idx.Len())
}

func TestIndexArticleReindexReplaces(t *testing.T) {
	idx := vectorindex.NewMemoryIndex()
	ix := NewIndexer(idx, NewHashEmbedder(), logger.NewTestLogger())
	ctx := context.Background()

	long := &models.Article{
		ArticleID: "art_000000000001",
		Title:     "Artikel",
		Content:   strings.Repeat("y", 5000),
	}
	require.NoError(t, ix.IndexArticle(ctx, long))
	before := idx.Len()
	require.Greater(t, before, 1)

	// Reindexing the shrunk article drops the stale chunk vectors.
	long.Content = "nur noch kurz"
	require.NoError(t, ix.IndexArticle(ctx, long))
	assert.Equal(t, 1, idx.Len())

	require.NoError(t, ix.DeleteArticle(ctx, long.ArticleID))
	assert.Equal(t, 0, idx.Len())
}
