package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// CreateComplaintWithAccess inserts the complaint and its access-password
// row in one transaction. Either both exist afterwards or neither does.
func (s *Service) CreateComplaintWithAccess(complaint *models.Complaint, passwordHash string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}
		access := models.ComplaintAccess{
			ComplaintID:  complaint.ID,
			PasswordHash: passwordHash,
		}
		return tx.Create(&access).Error
	})
}

func (s *Service) GetComplaintByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).First(&complaint, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %d: %v", id, err)
		return nil, err
	}
	return &complaint, nil
}

// GetComplaintByTicketID is an exact, case-sensitive match on the ticket ID.
func (s *Service) GetComplaintByTicketID(ticketID string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("ticket_id = ?", ticketID).First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint by ticket %s: %v", ticketID, err)
		return nil, err
	}
	return &complaint, nil
}

func (s *Service) UpdateComplaint(complaint *models.Complaint) error {
	return s.DB.Save(complaint).Error
}

// ListComplaints returns the full filtered set, newest first. Used by
// attorney_general listings; handlers go through ListComplaintsForHandler.
func (s *Service) ListComplaints(filter ComplaintFilter) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := applyComplaintFilter(s.DB.Model(&models.Complaint{}), filter).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// ListComplaintsForHandler returns the handler-visible set: complaints
// assigned to them, attended by them, or still pending (unclaimed work).
func (s *Service) ListComplaintsForHandler(email string, filter ComplaintFilter) ([]models.Complaint, error) {
	var complaints []models.Complaint
	q := s.DB.Model(&models.Complaint{}).
		Where("assigned_to_email = ? OR attended_by_email = ? OR status = ?",
			email, email, models.StatusPending)
	err := applyComplaintFilter(q, filter).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for handler %s: %v", email, err)
		return nil, err
	}
	return complaints, nil
}

func applyComplaintFilter(q *gorm.DB, filter ComplaintFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.County != "" {
		q = q.Where("county = ?", filter.County)
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = config.ComplaintPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return q.Offset((page - 1) * pageSize).Limit(pageSize)
}

func (s *Service) GetAccessForComplaint(complaintID uint) (*models.ComplaintAccess, error) {
	var access models.ComplaintAccess
	err := s.DB.Where("complaint_id = ?", complaintID).First(&access).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (s *Service) CreateReply(reply *models.ComplaintReply) error {
	if err := s.DB.Create(reply).Error; err != nil {
		log.Printf("ERROR: Failed to save reply for complaint %d: %v", reply.ComplaintID, err)
		return err
	}
	return nil
}

func (s *Service) CreateStatusUpdate(update *models.ComplaintStatusUpdate) error {
	if err := s.DB.Create(update).Error; err != nil {
		log.Printf("ERROR: Failed to save status update for complaint %d: %v", update.ComplaintID, err)
		return err
	}
	return nil
}

// ListStatusUpdates returns the audit trail oldest-first, the order the
// citizen-facing status page renders it.
func (s *Service) ListStatusUpdates(complaintID uint) ([]models.ComplaintStatusUpdate, error) {
	var updates []models.ComplaintStatusUpdate
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// SearchComplaints matches the query against ticket ID, subject and county.
func (s *Service) SearchComplaints(query string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	pattern := "%" + query + "%"
	err := s.DB.Where("ticket_id ILIKE ? OR subject ILIKE ? OR county ILIKE ?",
		pattern, pattern, pattern).
		Order("created_at desc").
		Limit(config.ComplaintPageSize).
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Complaint search failed: %v", err)
		return nil, err
	}
	return complaints, nil
}

func (s *Service) CountComplaintsByStatus() (map[models.ComplaintStatus]int64, error) {
	return countComplaintsBy[models.ComplaintStatus](s.DB, "status")
}

func (s *Service) CountComplaintsByPriority() (map[models.ComplaintPriority]int64, error) {
	return countComplaintsBy[models.ComplaintPriority](s.DB, "priority")
}

type bucketCount struct {
	Bucket string
	Count  int64
}

func countComplaintsBy[K ~string](db *gorm.DB, column string) (map[K]int64, error) {
	var rows []bucketCount
	err := db.Model(&models.Complaint{}).
		Select(column + " as bucket, count(*) as count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[K]int64, len(rows))
	for _, row := range rows {
		out[K(row.Bucket)] = row.Count
	}
	return out, nil
}
