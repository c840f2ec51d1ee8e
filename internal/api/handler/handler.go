// Package handler wires the HTTP surface: public citizen endpoints,
// the role-gated admin API and the live activity feed websocket.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/complaint"
	"citizendesk/backend/internal/feed"
	"citizendesk/backend/internal/localization"
	"citizendesk/backend/internal/news"
	"citizendesk/backend/internal/storage"
)

// Handler holds the services every route depends on.
type Handler struct {
	Complaints *complaint.Service
	News       *news.Service
	Store      storage.Storage
	Tokens     *auth.TokenManager
	Hub        *feed.Hub
	Localizer  *localization.Localizer
}

func NewHandler(
	complaints *complaint.Service,
	newsSvc *news.Service,
	store storage.Storage,
	tokens *auth.TokenManager,
	hub *feed.Hub,
	localizer *localization.Localizer,
) *Handler {
	return &Handler{
		Complaints: complaints,
		News:       newsSvc,
		Store:      store,
		Tokens:     tokens,
		Hub:        hub,
		Localizer:  localizer,
	}
}

// lang picks the response language from the query string.
func (h *Handler) lang(c *gin.Context) string {
	lang := c.Query("lang")
	if lang == "" || !h.Localizer.Supported(lang) {
		return localization.DefaultLang
	}
	return lang
}

// respondError maps domain sentinels onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, complaint.ErrValidation), errors.Is(err, news.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, complaint.ErrForbidden), errors.Is(err, news.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, complaint.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
