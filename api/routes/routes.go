package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/api/handlers"
	"github.com/canusa-hub/knowledge-nexus/api/middleware"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

// Setup wires all routes. The widget group is public; everything else
// requires a valid session.
func Setup(r *gin.Engine, h *handlers.Handlers, sessions store.SessionStore, users store.UserStore) {
	r.Use(middleware.CORS())

	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "CANUSA Knowledge Hub API", "version": "1.0.0"})
	})

	// Public embed widget.
	widget := api.Group("/widget")
	{
		widget.GET("/search", h.Widget.Search)
		widget.GET("/article/:article_id", h.Widget.Article)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(sessions, users))

	docs := authed.Group("/documents")
	{
		docs.POST("/upload", h.Document.Upload)
		docs.GET("", h.Document.List)
		docs.GET("/:document_id", h.Document.Get)
		docs.GET("/:document_id/pdf", h.Document.PDF)
		docs.DELETE("/:document_id", h.Document.Delete)
		docs.POST("/:document_id/create-article", h.Document.CreateArticle)
	}

	articles := authed.Group("/articles")
	{
		articles.GET("", h.Article.List)
		articles.POST("", h.Article.Create)
		articles.POST("/generate-summary", h.Article.GenerateSummary)
		articles.GET("/:article_id", h.Article.Get)
		articles.PUT("/:article_id", h.Article.Update)
		articles.DELETE("/:article_id", h.Article.Delete)
		articles.POST("/:article_id/favorite", h.Article.ToggleFavorite)
		articles.POST("/:article_id/viewed", h.Article.MarkViewed)
		articles.POST("/:article_id/presence", h.Presence.Heartbeat)
		articles.DELETE("/:article_id/presence", h.Presence.Leave)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:category_id", h.Category.Update)
		categories.DELETE("/:category_id", h.Category.Delete)
	}

	authed.POST("/search", h.Search.Search)
	authed.GET("/search/quick", h.Search.Quick)
	authed.GET("/favorites", h.Article.Favorites)
	authed.GET("/stats", h.Stats.Stats)
}
