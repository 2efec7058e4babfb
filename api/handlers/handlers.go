// Package handlers exposes the HTTP surface of the knowledge base.
package handlers

import (
	"github.com/canusa-hub/knowledge-nexus/internal/presence"
	"github.com/canusa-hub/knowledge-nexus/internal/search"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/internal/service/category"
	"github.com/canusa-hub/knowledge-nexus/internal/service/document"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type Handlers struct {
	Document *DocumentHandler
	Article  *ArticleHandler
	Category *CategoryHandler
	Search   *SearchHandler
	Widget   *WidgetHandler
	Stats    *StatsHandler
	Presence *PresenceHandler
}

// Deps carries everything the handlers need.
type Deps struct {
	Documents     *document.Service
	Articles      *article.Service
	Categories    *category.Service
	Engine        *search.Engine
	Tracker       presence.Tracker
	ArticleStore  store.ArticleStore
	DocumentStore store.DocumentStore
	CategoryStore store.CategoryStore
	Log           logger.Logger
}

func New(d Deps) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(d.Documents, d.Log),
		Article:  NewArticleHandler(d.Articles, d.Log),
		Category: NewCategoryHandler(d.Categories, d.Log),
		Search:   NewSearchHandler(d.Engine, d.Log),
		Widget:   NewWidgetHandler(d.Engine, d.Articles, d.Log),
		Stats:    NewStatsHandler(d.ArticleStore, d.DocumentStore, d.CategoryStore, d.Articles, d.Log),
		Presence: NewPresenceHandler(d.Tracker, d.Log),
	}
}
