package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"citizendesk/backend/internal/feed"
	"citizendesk/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeFeed upgrades the connection and registers it with the activity
// feed hub. Authentication ran in AuthRequired (token query parameter).
func (h *Handler) ServeFeed(c *gin.Context) {
	actor := MustActor(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &feed.WebSocketClient{
		UserID: actor.UserID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.ActivityEntry, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
