package feed

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"citizendesk/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements the feed.Client interface over a websocket
// connection from the admin portal.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan models.ActivityEntry
}

func (c *WebSocketClient) GetUserID() string                           { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ActivityEntry { return c.Send }

// Run starts the pumps for this connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the send channel, which stops writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump discards client messages; the feed is one-way. It exists to
// service pong frames and to detect a closed connection.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}
	}
}

// writePump reads entries from Send and writes them to the websocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case entry, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(entry)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.UserID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Drain anything already queued into the same frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, _ := json.Marshal(next)
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
