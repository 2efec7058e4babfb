package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/api/middleware"
	"github.com/canusa-hub/knowledge-nexus/internal/service/category"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type CategoryHandler struct {
	service *category.Service
	log     logger.Logger
}

func NewCategoryHandler(service *category.Service, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

type categoryBody struct {
	Name        string `json:"name" binding:"required"`
	ParentID    string `json:"parent_id"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (b categoryBody) input() category.Input {
	return category.Input{
		Name:        b.Name,
		ParentID:    b.ParentID,
		Description: b.Description,
		Order:       b.Order,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var body categoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	created, err := h.service.Create(c.Request.Context(), body.input(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var body categoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("category_id"), body.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("category_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
