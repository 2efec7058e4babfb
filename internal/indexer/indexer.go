// Package indexer maintains the article vectors in the similarity index.
// Articles are chunked, embedded and upserted under keys derived from the
// article ID so that re-indexing an article replaces its old vectors.
package indexer

import (
	"context"
	"fmt"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

const (
	// maxChunksPerArticle bounds index growth for very long articles.
	maxChunksPerArticle = 10
	// metadataChunkLimit caps the chunk text stored as match metadata.
	metadataChunkLimit = 500
)

type Indexer struct {
	index    vectorindex.Index
	embedder Embedder
	log      logger.Logger
}

func NewIndexer(index vectorindex.Index, embedder Embedder, log logger.Logger) *Indexer {
	return &Indexer{
		index:    index,
		embedder: embedder,
		log:      log.Named("indexer"),
	}
}

// IndexArticle replaces the article's vectors in the index. The title is
// prepended to the content so that title terms are embedded too.
func (ix *Indexer) IndexArticle(ctx context.Context, article *models.Article) error {
	chunks := ChunkText(article.Title + "\n\n" + article.Content)
	if len(chunks) > maxChunksPerArticle {
		chunks = chunks[:maxChunksPerArticle]
	}

	vectors := make([]vectorindex.Vector, 0, len(chunks))
	for i, chunk := range chunks {
		values, err := ix.embedder.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		vectors = append(vectors, vectorindex.Vector{
			ID:     ChunkID(article.ArticleID, i),
			Values: values,
			Metadata: map[string]any{
				"article_id":  article.ArticleID,
				"title":       article.Title,
				"chunk":       truncateRunes(chunk, metadataChunkLimit),
				"chunk_index": i,
			},
		})
	}

	// Drop old vectors first so a shrunk article leaves no stale chunks.
	if err := ix.DeleteArticle(ctx, article.ArticleID); err != nil {
		return err
	}
	if err := ix.index.Upsert(ctx, vectors); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	ix.log.Info("indexed article",
		logger.String("article_id", article.ArticleID),
		logger.Int("chunks", len(vectors)))
	return nil
}

// DeleteArticle removes every possible chunk vector of the article.
func (ix *Indexer) DeleteArticle(ctx context.Context, articleID string) error {
	ids := make([]string, maxChunksPerArticle)
	for i := range ids {
		ids[i] = ChunkID(articleID, i)
	}
	if err := ix.index.Delete(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete vectors: %w", err)
	}
	return nil
}

// ChunkID is the index key of one article chunk.
func ChunkID(articleID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", articleID, index)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
