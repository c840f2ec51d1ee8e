package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ComplaintStatus is the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

// ComplaintPriority is the staff-set urgency of a complaint.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityUrgent ComplaintPriority = "urgent"
)

// ReplyType distinguishes citizen-visible replies from internal notes.
type ReplyType string

const (
	ReplyExternal ReplyType = "external"
	ReplyInternal ReplyType = "internal"
)

// Complaint is a citizen-submitted grievance tracked through the triage
// workflow. Submitter fields are optional; anonymous submissions are valid.
type Complaint struct {
	gorm.Model

	// TicketID is the human-shareable identifier handed back to the
	// submitter, e.g. "AGX042".
	TicketID string `gorm:"uniqueIndex;not null" json:"ticket_id"`

	SubmitterName  string `json:"submitter_name,omitempty"`
	SubmitterEmail string `json:"submitter_email,omitempty"`
	SubmitterPhone string `json:"submitter_phone,omitempty"`

	County        string `gorm:"not null;index" json:"county"`
	Subject       string `gorm:"not null" json:"subject"`
	Body          string `gorm:"type:text;not null" json:"body"`
	AttachmentURL string `json:"attachment_url,omitempty"`

	Status   ComplaintStatus   `gorm:"type:text;not null;index" json:"status"`
	Priority ComplaintPriority `gorm:"type:text;not null" json:"priority"`

	AssignedTo      string `json:"assigned_to,omitempty"`
	AssignedToEmail string `gorm:"index" json:"assigned_to_email,omitempty"`

	// Attended fields record the first staff member to post an external
	// reply, and when they did so.
	AttendedBy      string     `json:"attended_by,omitempty"`
	AttendedByEmail string     `gorm:"index" json:"attended_by_email,omitempty"`
	AttendedAt      *time.Time `json:"attended_at,omitempty"`

	Tags pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	Replies []ComplaintReply `gorm:"foreignKey:ComplaintID" json:"replies,omitempty"`
}

// ComplaintReply belongs to exactly one complaint. External replies are
// shown to the citizen during status lookup; internal ones are staff-only.
type ComplaintReply struct {
	gorm.Model

	ComplaintID uint      `gorm:"not null;index" json:"complaint_id"`
	Type        ReplyType `gorm:"type:text;not null" json:"type"`
	AuthorName  string    `gorm:"not null" json:"author_name"`
	AuthorEmail string    `gorm:"not null" json:"author_email"`
	Body        string    `gorm:"type:text;not null" json:"body"`
}

// ComplaintAccess holds the bcrypt hash of the access password paired with
// a ticket ID. One row per complaint, created in the same transaction.
type ComplaintAccess struct {
	gorm.Model

	ComplaintID  uint   `gorm:"uniqueIndex;not null" json:"complaint_id"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// ComplaintStatusUpdate is an append-only audit row for a single status
// transition. It is never updated or deleted.
type ComplaintStatusUpdate struct {
	gorm.Model

	ComplaintID uint            `gorm:"not null;index" json:"complaint_id"`
	FromStatus  ComplaintStatus `gorm:"type:text;not null" json:"from_status"`
	ToStatus    ComplaintStatus `gorm:"type:text;not null" json:"to_status"`
	Message     string          `json:"message,omitempty"`
	ActorName   string          `json:"actor_name"`
	ActorEmail  string          `json:"actor_email"`
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityUrgent:
		return true
	}
	return false
}
