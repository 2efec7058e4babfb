package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canusa-hub/knowledge-nexus/api/middleware"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/presence"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type PresenceHandler struct {
	tracker presence.Tracker
	log     logger.Logger
}

func NewPresenceHandler(tracker presence.Tracker, log logger.Logger) *PresenceHandler {
	return &PresenceHandler{tracker: tracker, log: log}
}

// Heartbeat marks the user as active on the article and returns the
// other active editors.
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	user := middleware.CurrentUser(c)
	others, err := h.tracker.Heartbeat(c.Request.Context(), c.Param("article_id"), models.Presence{
		UserID:  user.UserID,
		Name:    user.Name,
		Picture: user.Picture,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_editors": others})
}

func (h *PresenceHandler) Leave(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.tracker.Leave(c.Request.Context(), c.Param("article_id"), user.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Presence removed"})
}
