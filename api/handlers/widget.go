package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/search"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

// WidgetHandler serves the public, unauthenticated embed widget. Only
// published articles are visible here.
type WidgetHandler struct {
	engine   *search.Engine
	articles *article.Service
	log      logger.Logger
}

func NewWidgetHandler(engine *search.Engine, articles *article.Service, log logger.Logger) *WidgetHandler {
	return &WidgetHandler{engine: engine, articles: articles, log: log}
}

func (h *WidgetHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	results := h.engine.Quick(c.Request.Context(), c.Query("q"), limit)
	c.JSON(http.StatusOK, gin.H{"results": results, "query": c.Query("q")})
}

func (h *WidgetHandler) Article(c *gin.Context) {
	found, err := h.articles.Get(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if found.Status != models.ArticlePublished {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article_id": found.ArticleID,
		"title":      found.Title,
		"content":    found.Content,
		"summary":    found.Summary,
	})
}
