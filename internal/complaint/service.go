// Package complaint implements the complaint lifecycle: citizen intake
// with ticket issuance, anonymous status lookup, role-gated triage
// (assignment, replies, status and priority changes) and the audit trail
// every mutation leaves behind.
package complaint

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage"
	"citizendesk/backend/internal/ticket"
)

var (
	// ErrInvalidLookup is returned for any ticket/password mismatch during
	// status lookup. Wrong ticket and wrong password are indistinguishable.
	ErrInvalidLookup = errors.New("invalid ticket ID or password")

	// ErrInvalidTransition rejects status changes outside the table.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrForbidden is returned when the actor's role lacks the capability
	// or the complaint is outside their visible set.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation covers missing or malformed intake fields.
	ErrValidation = errors.New("validation failed")
)

// Notifier receives a best-effort alert when a new complaint arrives.
type Notifier interface {
	ComplaintReceived(complaint *models.Complaint)
}

// Service handles the business logic for complaints.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier // optional
}

// NewService creates a new complaint service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// IntakeInput is what a citizen submits. Contact fields are optional;
// anonymous submissions are accepted.
type IntakeInput struct {
	Name          string
	Email         string
	Phone         string
	County        string
	Subject       string
	Body          string
	AttachmentURL string
	Tags          []string
}

func (in *IntakeInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.County) == "" {
		missing = append(missing, "county")
	}
	if strings.TrimSpace(in.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(in.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: malformed email", ErrValidation)
	}
	return nil
}

// Submit registers a new complaint. It returns the stored complaint and
// the plaintext access password; intake is the only time the password is
// available. Complaint and access row are written in one transaction, and
// a ticket ID collision is retried a bounded number of times.
func (s *Service) Submit(in IntakeInput) (*models.Complaint, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	password, err := ticket.NewAccessPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := auth.HashSecret(password)
	if err != nil {
		return nil, "", err
	}

	var complaint *models.Complaint
	for attempt := 0; attempt < config.TicketMaxRetries; attempt++ {
		ticketID, err := ticket.NewTicketID()
		if err != nil {
			return nil, "", err
		}

		c := &models.Complaint{
			TicketID:       ticketID,
			SubmitterName:  in.Name,
			SubmitterEmail: in.Email,
			SubmitterPhone: in.Phone,
			County:         in.County,
			Subject:        in.Subject,
			Body:           in.Body,
			AttachmentURL:  in.AttachmentURL,
			Status:         models.StatusPending,
			Priority:       models.PriorityMedium,
			Tags:           in.Tags,
		}

		err = s.Storage.CreateComplaintWithAccess(c, hash)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("INFO: Ticket ID %s collided, retrying", ticketID)
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to register complaint: %w", err)
		}
		complaint = c
		break
	}
	if complaint == nil {
		return nil, "", fmt.Errorf("failed to register complaint: could not allocate a ticket ID")
	}

	s.recordActivity("citizen", "", "Complaint submitted",
		fmt.Sprintf("Ticket %s (%s): %s", complaint.TicketID, complaint.County, complaint.Subject))

	if s.Notifier != nil {
		s.Notifier.ComplaintReceived(complaint)
	}

	return complaint, password, nil
}

// Lookup resolves a ticket ID + access password pair to the complaint and
// its status history. Any mismatch yields ErrInvalidLookup; internal
// replies are stripped before the complaint is returned.
func (s *Service) Lookup(ticketID, password string) (*models.Complaint, []models.ComplaintStatusUpdate, error) {
	complaint, err := s.Storage.GetComplaintByTicketID(ticketID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrInvalidLookup
	}
	if err != nil {
		return nil, nil, err
	}

	access, err := s.Storage.GetAccessForComplaint(complaint.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrInvalidLookup
	}
	if err != nil {
		return nil, nil, err
	}

	if err := auth.CheckSecret(password, access.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, nil, ErrInvalidLookup
		}
		return nil, nil, err
	}

	external := complaint.Replies[:0:0]
	for _, reply := range complaint.Replies {
		if reply.Type == models.ReplyExternal {
			external = append(external, reply)
		}
	}
	complaint.Replies = external

	updates, err := s.Storage.ListStatusUpdates(complaint.ID)
	if err != nil {
		return nil, nil, err
	}
	return complaint, updates, nil
}

// List returns the complaints visible to the actor, filtered server-side.
func (s *Service) List(actor *auth.Actor, filter storage.ComplaintFilter) ([]models.Complaint, error) {
	if !auth.Can(actor.Role, auth.ActionViewComplaints) {
		return nil, ErrForbidden
	}
	if actor.Role == models.RoleComplaintHandler {
		return s.Storage.ListComplaintsForHandler(actor.Email, filter)
	}
	return s.Storage.ListComplaints(filter)
}

// Get returns one complaint with replies and history if the actor may see it.
func (s *Service) Get(actor *auth.Actor, id uint) (*models.Complaint, []models.ComplaintStatusUpdate, error) {
	if !auth.Can(actor.Role, auth.ActionViewComplaints) {
		return nil, nil, ErrForbidden
	}
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, nil, err
	}
	if !Visible(actor.Role, actor.Email, complaint) {
		return nil, nil, ErrForbidden
	}
	updates, err := s.Storage.ListStatusUpdates(complaint.ID)
	if err != nil {
		return nil, nil, err
	}
	return complaint, updates, nil
}

// Assign hands a complaint to an active complaint handler. The status is
// forced to in_progress regardless of its prior value.
func (s *Service) Assign(actor *auth.Actor, id uint, assigneeEmail string) (*models.Complaint, error) {
	if !auth.Can(actor.Role, auth.ActionAssignComplaint) {
		return nil, ErrForbidden
	}

	handler, err := s.Storage.GetActiveHandler(assigneeEmail)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: no active complaint handler with email %s", ErrValidation, assigneeEmail)
	}
	if err != nil {
		return nil, err
	}

	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}

	from := complaint.Status
	complaint.AssignedTo = handler.Name
	complaint.AssignedToEmail = handler.Email
	complaint.Status = models.StatusInProgress

	if err := s.Storage.UpdateComplaint(complaint); err != nil {
		return nil, err
	}

	if from != models.StatusInProgress {
		s.recordStatusUpdate(actor, complaint.ID, from, models.StatusInProgress,
			fmt.Sprintf("Assigned to %s", handler.Name))
	}
	s.recordActivity(actor.Name, actor.Email, "Complaint assigned",
		fmt.Sprintf("Ticket %s assigned to %s", complaint.TicketID, handler.Name))

	return complaint, nil
}

// AddReply appends a reply. External replies mark the complaint attended
// (first responder only) and advance a pending complaint to in_progress;
// no other status is touched. Internal replies have no side effects.
func (s *Service) AddReply(actor *auth.Actor, id uint, replyType models.ReplyType, body string) (*models.ComplaintReply, error) {
	if !auth.Can(actor.Role, auth.ActionReplyComplaint) {
		return nil, ErrForbidden
	}
	if replyType != models.ReplyExternal && replyType != models.ReplyInternal {
		return nil, fmt.Errorf("%w: unknown reply type %q", ErrValidation, replyType)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: reply body is empty", ErrValidation)
	}

	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if !Visible(actor.Role, actor.Email, complaint) {
		return nil, ErrForbidden
	}

	reply := &models.ComplaintReply{
		ComplaintID: complaint.ID,
		Type:        replyType,
		AuthorName:  actor.Name,
		AuthorEmail: actor.Email,
		Body:        body,
	}
	if err := s.Storage.CreateReply(reply); err != nil {
		return nil, err
	}

	if replyType == models.ReplyExternal {
		changed := false
		if complaint.AttendedByEmail == "" {
			now := time.Now()
			complaint.AttendedBy = actor.Name
			complaint.AttendedByEmail = actor.Email
			complaint.AttendedAt = &now
			changed = true
		}
		if complaint.Status == models.StatusPending {
			from := complaint.Status
			complaint.Status = models.StatusInProgress
			changed = true
			s.recordStatusUpdate(actor, complaint.ID, from, models.StatusInProgress, "First response sent")
		}
		if changed {
			if err := s.Storage.UpdateComplaint(complaint); err != nil {
				return nil, err
			}
		}
	}

	s.recordActivity(actor.Name, actor.Email, "Reply added",
		fmt.Sprintf("%s reply on ticket %s", replyType, complaint.TicketID))

	return reply, nil
}

// ChangeStatus applies a manual status transition, rejecting anything
// outside the transition table before any write happens.
func (s *Service) ChangeStatus(actor *auth.Actor, id uint, to models.ComplaintStatus, message string) (*models.Complaint, error) {
	if !auth.Can(actor.Role, auth.ActionChangeStatus) {
		return nil, ErrForbidden
	}
	if !models.ValidStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}

	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}

	from := complaint.Status
	if !CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	complaint.Status = to
	if err := s.Storage.UpdateComplaint(complaint); err != nil {
		return nil, err
	}

	s.recordStatusUpdate(actor, complaint.ID, from, to, message)
	s.recordActivity(actor.Name, actor.Email, "Status changed",
		fmt.Sprintf("Ticket %s: %s -> %s", complaint.TicketID, from, to))

	return complaint, nil
}

// ChangePriority sets the complaint priority.
func (s *Service) ChangePriority(actor *auth.Actor, id uint, priority models.ComplaintPriority) (*models.Complaint, error) {
	if !auth.Can(actor.Role, auth.ActionChangePriority) {
		return nil, ErrForbidden
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}

	complaint.Priority = priority
	if err := s.Storage.UpdateComplaint(complaint); err != nil {
		return nil, err
	}

	s.recordActivity(actor.Name, actor.Email, "Priority changed",
		fmt.Sprintf("Ticket %s priority set to %s", complaint.TicketID, priority))

	return complaint, nil
}

// Search returns complaints matching the query, restricted to the actor's
// visible set.
func (s *Service) Search(actor *auth.Actor, query string) ([]models.Complaint, error) {
	if !auth.Can(actor.Role, auth.ActionViewComplaints) {
		return []models.Complaint{}, nil
	}
	complaints, err := s.Storage.SearchComplaints(query)
	if err != nil {
		return nil, err
	}
	return FilterVisible(actor.Role, actor.Email, complaints), nil
}

func (s *Service) recordStatusUpdate(actor *auth.Actor, complaintID uint, from, to models.ComplaintStatus, message string) {
	update := &models.ComplaintStatusUpdate{
		ComplaintID: complaintID,
		FromStatus:  from,
		ToStatus:    to,
		Message:     message,
		ActorName:   actor.Name,
		ActorEmail:  actor.Email,
	}
	if err := s.Storage.CreateStatusUpdate(update); err != nil {
		log.Printf("ERROR: Failed to record status update for complaint %d: %v", complaintID, err)
	}
}

func (s *Service) recordActivity(actorName, actorEmail, action, details string) {
	entry := &models.ActivityLog{
		ActorName:  actorName,
		ActorEmail: actorEmail,
		Action:     action,
		Details:    details,
		Type:       models.ActivityComplaint,
	}
	if err := s.Storage.SaveActivity(entry); err != nil {
		log.Printf("ERROR: Failed to record activity %q: %v", action, err)
	}
}
