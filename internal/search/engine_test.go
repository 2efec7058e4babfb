package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/internal/indexer"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store/memory"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type fakeGenerator struct {
	answer string
	err    error
	calls  int
}

func (f *fakeGenerator) Summarize(context.Context, string) (string, error) { return "", nil }
func (f *fakeGenerator) Translate(context.Context, string) (string, error) { return "", nil }
func (f *fakeGenerator) Available() bool                                   { return true }

func (f *fakeGenerator) Answer(context.Context, string, string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func seedArticle(t *testing.T, articles *memory.ArticleStore, title, content, summary string, tags ...string) *models.Article {
	t.Helper()
	now := time.Now()
	article := &models.Article{
		ArticleID: models.NewArticleID(),
		Title:     title,
		Content:   content,
		Summary:   summary,
		Tags:      tags,
		Status:    models.ArticlePublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, articles.Insert(context.Background(), article))
	return article
}

func newTestEngine(articles *memory.ArticleStore, gen *fakeGenerator) *Engine {
	idx := vectorindex.NewMemoryIndex()
	embedder := indexer.NewHashEmbedder()
	if gen == nil {
		return NewEngine(articles, idx, embedder, nil, logger.NewTestLogger())
	}
	return NewEngine(articles, idx, embedder, gen, logger.NewTestLogger())
}

func TestSearchShortQueryReturnsEmpty(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Willkommen bei CANUSA", "Inhalt", "")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "W", TopK: 5})

	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestSearchNoHitsSerializesEmptyResultList(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Willkommen bei CANUSA", "Inhalt", "")

	engine := newTestEngine(articles, nil)
	answer := engine.Answer(context.Background(), models.SearchQuery{Query: "unbekanntes Thema", TopK: 5})

	data, err := json.Marshal(answer)
	require.NoError(t, err)
	// Clients expect an empty list, never null.
	assert.Contains(t, string(data), `"results":[]`)
	assert.Equal(t, noResultsFallback, answer.Answer)
}

func TestQuickNoHitsReturnsNonNilSlice(t *testing.T) {
	articles := memory.NewArticleStore()
	engine := newTestEngine(articles, nil)

	results := engine.Quick(context.Background(), "unbekanntes Thema", 3)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchTitleMatchOutranksContentMatch(t *testing.T) {
	articles := memory.NewArticleStore()
	titleHit := seedArticle(t, articles, "Buchungsprozess Kanada", "anderes Thema", "")
	contentHit := seedArticle(t, articles, "Allgemeines", "Details zum Buchungsprozess", "")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Buchungsprozess", TopK: 5})

	require.Len(t, results, 2)
	assert.Equal(t, titleHit.ArticleID, results[0].ArticleID)
	assert.Equal(t, contentHit.ArticleID, results[1].ArticleID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchScoreCappedAtOne(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Visum Visum", "Visum Inhalt", "Visum Zusammenfassung", "visum")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Visum Visum Visum", TopK: 5})

	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestSearchIgnoresUnpublishedArticles(t *testing.T) {
	articles := memory.NewArticleStore()
	draft := seedArticle(t, articles, "Willkommen Entwurf", "Inhalt", "")
	draft.Status = models.ArticleDraft
	require.NoError(t, articles.Update(context.Background(), draft))

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Willkommen", TopK: 5})

	assert.Empty(t, results)
}

func TestSearchWillkommenScenario(t *testing.T) {
	articles := memory.NewArticleStore()
	article := seedArticle(t, articles, "Willkommen bei CANUSA", "Seite 1: Willkommen bei CANUSA", "")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Willkommen", TopK: 5})

	require.Len(t, results, 1)
	assert.Equal(t, article.ArticleID, results[0].ArticleID)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestSearchSnippetPrefersSummary(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Mietwagen", "<p>Langer Inhalt über Mietwagen</p>", "Kurze Zusammenfassung")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Mietwagen", TopK: 5})

	require.Len(t, results, 1)
	assert.Equal(t, "Kurze Zusammenfassung", results[0].ContentSnippet)
}

func TestSearchSnippetWindowsAroundTermHit(t *testing.T) {
	articles := memory.NewArticleStore()
	padding := ""
	for i := 0; i < 100; i++ {
		padding += "Fülltext ohne Treffer. "
	}
	seedArticle(t, articles, "Reiseversicherung", "<p>"+padding+"Der Begriff Stornokosten steht weit hinten.</p>", "")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Stornokosten", TopK: 5})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].ContentSnippet, "Stornokosten")
	assert.LessOrEqual(t, len([]rune(results[0].ContentSnippet)), snippetLength)
	assert.NotContains(t, results[0].ContentSnippet, "<p>")
}

func TestSearchSnippetSurvivesCaseChangingUnicode(t *testing.T) {
	articles := memory.NewArticleStore()
	// U+0130 shrinks from two bytes to one when lowercased, so byte
	// offsets in the lowered content drift from the original.
	padding := strings.Repeat("İ", 300)
	seedArticle(t, articles, "Sonderzeichen", padding+" Die Stornokosten stehen hinter dem Block.", "")

	engine := newTestEngine(articles, nil)
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Stornokosten", TopK: 5})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].ContentSnippet, "Stornokosten")
}

func TestSearchVectorStageFillsRemainingSlots(t *testing.T) {
	articles := memory.NewArticleStore()
	keywordHit := seedArticle(t, articles, "Einreise Kanada", "Einreisebestimmungen", "")

	idx := vectorindex.NewMemoryIndex()
	embedder := indexer.NewHashEmbedder()
	values, err := embedder.Embed(context.Background(), "Einreise")
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(context.Background(), []vectorindex.Vector{
		{
			ID:     "art_vector000001_chunk_0",
			Values: values,
			Metadata: map[string]any{
				"article_id": "art_vector000001",
				"title":      "Nur im Vektorindex",
				"chunk":      "semantisch ähnlicher Text",
			},
		},
		{
			ID:     indexer.ChunkID(keywordHit.ArticleID, 0),
			Values: values,
			Metadata: map[string]any{
				"article_id": keywordHit.ArticleID,
				"title":      keywordHit.Title,
				"chunk":      "Einreisebestimmungen",
			},
		},
	}))

	engine := NewEngine(articles, idx, embedder, nil, logger.NewTestLogger())
	results := engine.Search(context.Background(), models.SearchQuery{Query: "Einreise", TopK: 5})

	require.Len(t, results, 2)
	// The keyword result keeps its keyword score and stays on top.
	assert.Equal(t, keywordHit.ArticleID, results[0].ArticleID)
	assert.Equal(t, "art_vector000001", results[1].ArticleID)
	assert.LessOrEqual(t, results[1].Score, vectorDownweight)
}

func TestAnswerEmptyContextSkipsGenerator(t *testing.T) {
	articles := memory.NewArticleStore()
	gen := &fakeGenerator{answer: "sollte nicht aufgerufen werden"}

	engine := newTestEngine(articles, gen)
	answer := engine.Answer(context.Background(), models.SearchQuery{Query: "unbekanntes Thema", TopK: 5})

	assert.Equal(t, noResultsFallback, answer.Answer)
	assert.Empty(t, answer.Results)
	assert.Equal(t, "unbekanntes Thema", answer.Query)
	assert.Zero(t, gen.calls)
}

func TestAnswerGeneratorFailureUsesFallback(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Willkommen bei CANUSA", "Inhalt", "Zusammenfassung")
	gen := &fakeGenerator{err: errors.New("quota exceeded")}

	engine := newTestEngine(articles, gen)
	answer := engine.Answer(context.Background(), models.SearchQuery{Query: "Willkommen", TopK: 5})

	assert.Equal(t, answerErrorFallback, answer.Answer)
	require.Len(t, answer.Results, 1)
	assert.Equal(t, 1, gen.calls)
}

func TestAnswerUsesGeneratedText(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Willkommen bei CANUSA", "Inhalt", "Zusammenfassung")
	gen := &fakeGenerator{answer: "Willkommen bei CANUSA ist ein Einstiegsartikel."}

	engine := newTestEngine(articles, gen)
	answer := engine.Answer(context.Background(), models.SearchQuery{Query: "Willkommen", TopK: 5})

	assert.Equal(t, gen.answer, answer.Answer)
}

func TestQuickSearchLimitsResults(t *testing.T) {
	articles := memory.NewArticleStore()
	seedArticle(t, articles, "Kanada Reise 1", "Inhalt", "")
	seedArticle(t, articles, "Kanada Reise 2", "Inhalt", "")
	seedArticle(t, articles, "Kanada Reise 3", "Inhalt", "")
	seedArticle(t, articles, "Kanada Reise 4", "Inhalt", "")

	engine := newTestEngine(articles, nil)
	results := engine.Quick(context.Background(), "Kanada", 3)

	assert.Len(t, results, 3)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Titel Absatz eins", StripHTML("<h2>Titel</h2><p>Absatz eins</p>"))
	assert.Equal(t, "kein Markup", StripHTML("kein Markup"))
	assert.Equal(t, "a < b", StripHTML("a &lt; b"))
}
