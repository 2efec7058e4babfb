// Package search ranks articles for a free-text query. The keyword stage
// scores published articles by field-weighted substring matching; a
// vector stage fills remaining slots when the index is available. The
// engine degrades instead of failing: it always returns a result set,
// possibly empty.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/canusa-hub/knowledge-nexus/internal/genai"
	"github.com/canusa-hub/knowledge-nexus/internal/indexer"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

const (
	// Queries shorter than this return an empty result without touching
	// the embedder or the remote services.
	minQueryLength = 2

	snippetLength = 200

	// Field weights per matched term. Title relevance dominates.
	weightTitle   = 0.5
	weightSummary = 0.3
	weightTags    = 0.2
	weightContent = 0.1

	// Vector-derived scores are trusted less than keyword hits.
	vectorDownweight = 0.5
)

// Static German fallbacks when answer synthesis is unavailable.
const (
	answerErrorFallback = "Basierend auf den gefundenen Artikeln konnte ich relevante Informationen finden. Bitte prüfen Sie die Quellen unten."
	noResultsFallback   = "Leider konnte ich keine relevanten Artikel zu Ihrer Anfrage finden. Bitte versuchen Sie eine andere Suche oder erstellen Sie einen neuen Wissensartikel."
)

type Engine struct {
	articles store.ArticleStore
	index    vectorindex.Index
	embedder indexer.Embedder
	gen      genai.TextGenerator
	log      logger.Logger
}

// NewEngine builds the search engine. index and gen may be nil; search
// then runs keyword-only and answers fall back to static text.
func NewEngine(articles store.ArticleStore, index vectorindex.Index, embedder Embedder, gen genai.TextGenerator, log logger.Logger) *Engine {
	return &Engine{
		articles: articles,
		index:    index,
		embedder: embedder,
		gen:      gen,
		log:      log.Named("search"),
	}
}

// Embedder mirrors indexer.Embedder so callers can pass either.
type Embedder = indexer.Embedder

// Search returns up to query.TopK ranked, deduplicated results.
func (e *Engine) Search(ctx context.Context, query models.SearchQuery) []models.SearchResult {
	q := strings.TrimSpace(query.Query)
	if len([]rune(q)) < minQueryLength {
		return []models.SearchResult{}
	}
	topK := query.TopK
	if topK <= 0 {
		topK = 5
	}

	results := e.keywordStage(ctx, q, query.CategoryID)

	if len(results) < topK && e.index != nil && e.embedder != nil {
		results = e.vectorStage(ctx, q, topK, results)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Answer runs Search and synthesizes a natural-language answer grounded
// in the results. It never returns an error.
func (e *Engine) Answer(ctx context.Context, query models.SearchQuery) *models.AIAnswer {
	results := e.Search(ctx, query)

	contextBlock := buildContext(results)
	if contextBlock == "" {
		return &models.AIAnswer{
			Answer:  noResultsFallback,
			Results: results,
			Query:   query.Query,
		}
	}

	answer := answerErrorFallback
	if e.gen != nil && e.gen.Available() {
		text, err := e.gen.Answer(ctx, query.Query, contextBlock)
		if err != nil {
			e.log.Warn("answer synthesis failed", logger.Error(err))
		} else {
			answer = text
		}
	}

	return &models.AIAnswer{
		Answer:  answer,
		Results: results,
		Query:   query.Query,
	}
}

// Quick returns lightweight matches for autocomplete: published articles
// whose title or content contains the query, best-scored first.
func (e *Engine) Quick(ctx context.Context, query string, limit int) []models.SearchResult {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < minQueryLength {
		return []models.SearchResult{}
	}
	if limit <= 0 {
		limit = 3
	}

	results := e.keywordStage(ctx, q, "")
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (e *Engine) keywordStage(ctx context.Context, query, categoryID string) []models.SearchResult {
	articles, err := e.articles.List(ctx, store.ArticleFilter{
		Status:     models.ArticlePublished,
		CategoryID: categoryID,
	}, 0)
	if err != nil {
		e.log.Warn("keyword stage failed to list articles", logger.Error(err))
		return []models.SearchResult{}
	}

	terms := tokenize(query)
	// Non-nil even with zero hits so the response serializes as [].
	results := []models.SearchResult{}
	for _, article := range articles {
		score := scoreArticle(article, terms)
		if score <= 0 {
			continue
		}
		results = append(results, models.SearchResult{
			ArticleID:      article.ArticleID,
			Title:          article.Title,
			ContentSnippet: snippet(article, terms),
			Score:          score,
		})
	}
	return results
}

func (e *Engine) vectorStage(ctx context.Context, query string, topK int, existing []models.SearchResult) []models.SearchResult {
	values, err := e.embedder.Embed(ctx, query)
	if err != nil {
		e.log.Warn("query embedding failed", logger.Error(err))
		return existing
	}

	matches, err := e.index.Query(ctx, values, topK)
	if err != nil {
		e.log.Warn("vector query failed", logger.Error(err))
		return existing
	}

	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.ArticleID] = true
	}

	for _, match := range matches {
		articleID, _ := match.Metadata["article_id"].(string)
		if articleID == "" || seen[articleID] {
			continue
		}
		seen[articleID] = true

		title, _ := match.Metadata["title"].(string)
		chunk, _ := match.Metadata["chunk"].(string)
		existing = append(existing, models.SearchResult{
			ArticleID:      articleID,
			Title:          title,
			ContentSnippet: truncateRunes(chunk, snippetLength),
			Score:          float64(match.Score) * vectorDownweight,
		})
	}
	return existing
}

func scoreArticle(article models.Article, terms []string) float64 {
	title := strings.ToLower(article.Title)
	summary := strings.ToLower(article.Summary)
	content := strings.ToLower(StripHTML(article.Content))
	tags := strings.ToLower(strings.Join(article.Tags, " "))

	var score float64
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += weightTitle
		}
		if strings.Contains(summary, term) {
			score += weightSummary
		}
		if strings.Contains(tags, term) {
			score += weightTags
		}
		if strings.Contains(content, term) {
			score += weightContent
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// snippet prefers the stored summary, then a window around the first term
// hit in the stripped content, then the first snippetLength characters.
func snippet(article models.Article, terms []string) string {
	if article.Summary != "" {
		return truncateRunes(article.Summary, snippetLength)
	}

	content := StripHTML(article.Content)
	lower := strings.ToLower(content)
	for _, term := range terms {
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		runes := []rune(content)
		// The byte offset is only valid in the lowered string; convert
		// to a rune offset there. Lowering maps rune for rune, so the
		// offset lines up with the original-cased runes.
		pos := len([]rune(lower[:idx]))
		start := pos - snippetLength/2
		if start < 0 {
			start = 0
		}
		end := start + snippetLength
		if end > len(runes) {
			end = len(runes)
		}
		return string(runes[start:end])
	}
	return truncateRunes(content, snippetLength)
}

func buildContext(results []models.SearchResult) string {
	var b strings.Builder
	for _, r := range results {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "### %s\n%s", r.Title, r.ContentSnippet)
	}
	return b.String()
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= minQueryLength {
			terms = append(terms, f)
		}
	}
	if len(terms) == 0 {
		terms = append(terms, strings.ToLower(strings.TrimSpace(query)))
	}
	return terms
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
