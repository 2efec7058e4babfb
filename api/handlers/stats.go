package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/canusa-hub/knowledge-nexus/api/middleware"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

// StatsHandler aggregates the dashboard counters. Counts come straight
// from the stores; the lists come from the article service.
type StatsHandler struct {
	articles   store.ArticleStore
	documents  store.DocumentStore
	categories store.CategoryStore
	svc        *article.Service
	log        logger.Logger
}

func NewStatsHandler(articles store.ArticleStore, documents store.DocumentStore, categories store.CategoryStore, svc *article.Service, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		articles:   articles,
		documents:  documents,
		categories: categories,
		svc:        svc,
		log:        log,
	}
}

// Stats fans the independent queries out in parallel; the dashboard
// hits this on every load.
func (h *StatsHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var (
		totalArticles, published, drafts, inReview int64
		totalCategories                            int64
		totalDocuments, pendingDocuments           int64
		articlesCreated, documentsUploaded         int64
		recent, favorites, recentlyViewed          []models.Article
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		totalArticles, err = h.articles.CountByStatus(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		published, err = h.articles.CountByStatus(ctx, models.ArticlePublished)
		return err
	})
	g.Go(func() (err error) {
		drafts, err = h.articles.CountByStatus(ctx, models.ArticleDraft)
		return err
	})
	g.Go(func() (err error) {
		inReview, err = h.articles.CountByStatus(ctx, models.ArticleReview)
		return err
	})
	g.Go(func() (err error) {
		totalCategories, err = h.categories.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		totalDocuments, err = h.documents.CountByStatus(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		pendingDocuments, err = h.documents.CountByStatus(ctx, models.DocumentPending)
		return err
	})
	g.Go(func() (err error) {
		recent, err = h.articles.List(ctx, store.ArticleFilter{}, 5)
		return err
	})
	g.Go(func() (err error) {
		favorites, err = h.svc.Favorites(ctx, user.UserID, 5)
		return err
	})
	g.Go(func() (err error) {
		recentlyViewed, err = h.svc.RecentlyViewed(ctx, user.UserID, 10)
		return err
	})
	g.Go(func() (err error) {
		articlesCreated, err = h.articles.CountByCreator(ctx, user.UserID)
		return err
	})
	g.Go(func() (err error) {
		documentsUploaded, err = h.documents.CountByUploader(ctx, user.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_articles":     totalArticles,
		"published_articles": published,
		"draft_articles":     drafts,
		"review_articles":    inReview,
		"total_categories":   totalCategories,
		"total_documents":    totalDocuments,
		"pending_documents":  pendingDocuments,
		"recent_articles":    recent,
		"favorite_articles":  favorites,
		"recently_viewed":    recentlyViewed,
		"user_stats": gin.H{
			"articles_created":   articlesCreated,
			"documents_uploaded": documentsUploaded,
		},
	})
}
