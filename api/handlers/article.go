package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/api/middleware"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type ArticleHandler struct {
	service *article.Service
	log     logger.Logger
}

func NewArticleHandler(service *article.Service, log logger.Logger) *ArticleHandler {
	return &ArticleHandler{service: service, log: log}
}

type createArticleBody struct {
	Title      string               `json:"title" binding:"required"`
	Content    string               `json:"content"`
	Summary    string               `json:"summary"`
	CategoryID string               `json:"category_id"`
	Status     models.ArticleStatus `json:"status"`
	Visibility models.Visibility    `json:"visibility"`
	Tags       []string             `json:"tags"`
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var body createArticleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	created, err := h.service.Create(c.Request.Context(), article.CreateInput{
		Title:      body.Title,
		Content:    body.Content,
		Summary:    body.Summary,
		CategoryID: body.CategoryID,
		Status:     body.Status,
		Visibility: body.Visibility,
		Tags:       body.Tags,
	}, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ArticleHandler) List(c *gin.Context) {
	filter := store.ArticleFilter{
		Status:     models.ArticleStatus(c.Query("status")),
		CategoryID: c.Query("category_id"),
	}
	articles, err := h.service.List(c.Request.Context(), filter, 1000)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var update models.ArticleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.service.Update(c.Request.Context(), c.Param("article_id"), update, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("article_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

func (h *ArticleHandler) ToggleFavorite(c *gin.Context) {
	user := middleware.CurrentUser(c)
	favorited, err := h.service.ToggleFavorite(c.Request.Context(), c.Param("article_id"), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Aus Favoriten entfernt"
	if favorited {
		message = "Zu Favoriten hinzugefügt"
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited, "message": message})
}

func (h *ArticleHandler) Favorites(c *gin.Context) {
	user := middleware.CurrentUser(c)
	favorites, err := h.service.Favorites(c.Request.Context(), user.UserID, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *ArticleHandler) MarkViewed(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.service.MarkViewed(c.Request.Context(), c.Param("article_id"), user.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as viewed"})
}

type generateSummaryBody struct {
	Content string `json:"content"`
}

// GenerateSummary returns an AI summary for editor content. Failures and
// trivial content yield an empty summary, never an error.
func (h *ArticleHandler) GenerateSummary(c *gin.Context) {
	var body generateSummaryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	summary := h.service.GenerateSummary(c.Request.Context(), body.Content)
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
