package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/api/middleware"
	"github.com/canusa-hub/knowledge-nexus/internal/service/document"
	"github.com/canusa-hub/knowledge-nexus/internal/utils/validator"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type DocumentHandler struct {
	service *document.Service
	log     logger.Logger
}

func NewDocumentHandler(service *document.Service, log logger.Logger) *DocumentHandler {
	return &DocumentHandler{service: service, log: log}
}

// Upload accepts a multipart PDF and starts background processing.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file upload"})
		return
	}
	defer file.Close()

	if err := validator.ValidatePDF(header); err != nil {
		respondError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	targetLanguage := c.Query("target_language")
	force := c.Query("force") == "true"

	doc, err := h.service.Upload(c.Request.Context(), header.Filename, file, targetLanguage, user.UserID, force)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": doc.DocumentID,
		"filename":    doc.Filename,
		"status":      doc.Status,
		"message":     "Document uploaded and processing started",
	})
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), 100)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("document_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// PDF streams the stored original for the inline viewer.
func (h *DocumentHandler) PDF(c *gin.Context) {
	reader, doc, err := h.service.OpenPDF(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `inline; filename="`+doc.Filename+`"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

type createArticleRequest struct {
	Title      string `json:"title"`
	CategoryID string `json:"category_id"`
}

// CreateArticle seeds a draft article from a completed document.
func (h *DocumentHandler) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	user := middleware.CurrentUser(c)
	article, err := h.service.CreateArticle(c.Request.Context(), c.Param("document_id"), req.Title, req.CategoryID, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}
