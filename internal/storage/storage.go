// Package storage is the persistence layer: Postgres through GORM for the
// system of record, Redis for the live activity feed and dashboard cache.
package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"citizendesk/backend/internal/models"
)

// ComplaintFilter narrows admin complaint listings.
type ComplaintFilter struct {
	Status   models.ComplaintStatus
	Priority models.ComplaintPriority
	County   string
	Page     int
	PageSize int
}

// Storage is the repository interface every service depends on.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	GetActiveHandler(email string) (*models.User, error)

	// Complaints
	CreateComplaintWithAccess(complaint *models.Complaint, passwordHash string) error
	GetComplaintByID(id uint) (*models.Complaint, error)
	GetComplaintByTicketID(ticketID string) (*models.Complaint, error)
	UpdateComplaint(complaint *models.Complaint) error
	ListComplaints(filter ComplaintFilter) ([]models.Complaint, error)
	ListComplaintsForHandler(email string, filter ComplaintFilter) ([]models.Complaint, error)
	GetAccessForComplaint(complaintID uint) (*models.ComplaintAccess, error)
	CreateReply(reply *models.ComplaintReply) error
	CreateStatusUpdate(update *models.ComplaintStatusUpdate) error
	ListStatusUpdates(complaintID uint) ([]models.ComplaintStatusUpdate, error)

	// News
	CreateArticle(article *models.NewsArticle) error
	GetArticleByID(id uint) (*models.NewsArticle, error)
	UpdateArticle(article *models.NewsArticle) error
	DeleteArticle(id uint) error
	ListArticles(status models.ArticleStatus, page int) ([]models.NewsArticle, error)
	ListPublishedArticles(page int) ([]models.NewsArticle, error)

	// Activity
	SaveActivity(entry *models.ActivityLog) error
	ListActivity(page int, activityType models.ActivityType) ([]models.ActivityLog, error)

	// Search
	SearchComplaints(query string) ([]models.Complaint, error)
	SearchArticles(query string) ([]models.NewsArticle, error)

	// Dashboard
	CountComplaintsByStatus() (map[models.ComplaintStatus]int64, error)
	CountComplaintsByPriority() (map[models.ComplaintPriority]int64, error)
	CountPublishedArticles() (int64, error)
	CacheDashboard(payload []byte) error
	GetCachedDashboard() ([]byte, error)
}

// Service implements Storage over GORM and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService constructs the storage service. Redis may be nil for
// CLI usage; feed and cache methods then degrade to no-ops.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
