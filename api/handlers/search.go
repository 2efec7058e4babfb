package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/search"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type SearchHandler struct {
	engine *search.Engine
	log    logger.Logger
}

func NewSearchHandler(engine *search.Engine, log logger.Logger) *SearchHandler {
	return &SearchHandler{engine: engine, log: log}
}

// Search runs the ranked search and answer synthesis. It always returns
// 200 with a result structure, possibly with an empty result list.
func (h *SearchHandler) Search(c *gin.Context) {
	var query models.SearchQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if query.TopK <= 0 {
		query.TopK = 5
	}

	c.JSON(http.StatusOK, h.engine.Answer(c.Request.Context(), query))
}

// Quick serves autocomplete suggestions.
func (h *SearchHandler) Quick(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	results := h.engine.Quick(c.Request.Context(), c.Query("q"), limit)
	c.JSON(http.StatusOK, gin.H{"results": results, "query": c.Query("q")})
}
