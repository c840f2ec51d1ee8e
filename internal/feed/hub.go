// Package feed is the live activity feed for the admin portal. Every audit
// row written by a service is published to a Redis channel; the hub fans
// entries out to subscribed websocket clients.
package feed

import (
	"encoding/json"
	"log"

	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage"
)

// Hub owns the set of connected feed clients. All map access happens on
// the Run goroutine; registration, removal and broadcast go through
// channels.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.ActivityEntry

	Storage *storage.Service
}

// NewHub creates the feed hub. Storage may be nil in tests; the Redis
// listener is then not started and entries arrive via BroadcastCh only.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.ActivityEntry, 64),
		Storage:      s,
	}
}

// Run is the hub dispatcher. It must run on its own goroutine.
func (h *Hub) Run() {
	if h.Storage != nil && h.Storage.Redis != nil {
		h.startPubSubListener()
	}

	for {
		select {
		case client := <-h.RegisterCh:
			// A second connection for the same user replaces the first.
			if old, ok := h.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			h.Clients[client.GetUserID()] = client
			log.Printf("INFO: Feed client registered: %s", client.GetUserID())

		case client := <-h.UnregisterCh:
			if current, ok := h.Clients[client.GetUserID()]; ok && current == client {
				delete(h.Clients, client.GetUserID())
				client.Close()
				log.Printf("INFO: Feed client unregistered: %s", client.GetUserID())
			}

		case entry := <-h.BroadcastCh:
			for userID, client := range h.Clients {
				select {
				case client.GetSendChannel() <- entry:
				default:
					// Slow client: drop it rather than block the feed.
					delete(h.Clients, userID)
					client.Close()
				}
			}
		}
	}
}

// startPubSubListener bridges the Redis activity channel into BroadcastCh
// so entries written by any server instance reach this hub's clients.
func (h *Hub) startPubSubListener() {
	pubsub := h.Storage.SubscribeActivity()

	go func() {
		defer pubsub.Close()
		for msg := range pubsub.Channel() {
			var entry models.ActivityEntry
			if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
				log.Printf("ERROR: Failed to unmarshal activity entry: %v", err)
				continue
			}
			h.BroadcastCh <- entry
		}
	}()
}
