package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityType tags an activity log row by the subsystem it concerns.
type ActivityType string

const (
	ActivityComplaint ActivityType = "complaint"
	ActivityNews      ActivityType = "news"
	ActivitySystem    ActivityType = "system"
)

// ActivityLog is an append-only record of a mutating admin action. Rows are
// never updated or deleted and are listed most-recent-first.
type ActivityLog struct {
	gorm.Model

	ActorName  string       `json:"actor_name"`
	ActorEmail string       `gorm:"index" json:"actor_email"`
	Action     string       `gorm:"not null" json:"action"`
	Details    string       `gorm:"type:text" json:"details,omitempty"`
	Type       ActivityType `gorm:"type:text;not null;index" json:"type"`
}

// ActivityEntry is the wire form of an activity row broadcast over the
// live feed (Redis pub/sub -> websocket).
type ActivityEntry struct {
	ID         uint         `json:"id"`
	ActorName  string       `json:"actor_name"`
	ActorEmail string       `json:"actor_email"`
	Action     string       `json:"action"`
	Details    string       `json:"details,omitempty"`
	Type       ActivityType `json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Entry converts a stored log row to its broadcast form.
func (a *ActivityLog) Entry() ActivityEntry {
	return ActivityEntry{
		ID:         a.ID,
		ActorName:  a.ActorName,
		ActorEmail: a.ActorEmail,
		Action:     a.Action,
		Details:    a.Details,
		Type:       a.Type,
		CreatedAt:  a.CreatedAt,
	}
}
