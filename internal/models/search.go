package models

// SearchQuery is a free-text search request.
type SearchQuery struct {
	Query      string `json:"query"`
	TopK       int    `json:"top_k"`
	CategoryID string `json:"category_id,omitempty"`
}

// SearchResult is one ranked candidate article.
type SearchResult struct {
	ArticleID      string  `json:"article_id"`
	Title          string  `json:"title"`
	ContentSnippet string  `json:"content_snippet"`
	Score          float64 `json:"score"`
}

// AIAnswer is a search response with an optional synthesized answer
// grounded in the ranked sources.
type AIAnswer struct {
	Answer  string         `json:"answer"`
	Results []SearchResult `json:"results"`
	Query   string         `json:"query"`
}
