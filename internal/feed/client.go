package feed

import "citizendesk/backend/internal/models"

// Client is the interface for a connected feed subscriber. It abstracts
// the transport so the hub can manage subscribers uniformly.
type Client interface {
	// GetUserID returns the staff user ID behind the connection.
	GetUserID() string

	// GetSendChannel returns the channel the hub writes entries into.
	GetSendChannel() chan<- models.ActivityEntry

	// Run starts the client's pumps.
	Run()

	// Close shuts down the client's send channel and connection.
	Close()
}
