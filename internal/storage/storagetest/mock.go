// Package storagetest provides a testify-based mock of the Storage
// interface shared by the service test suites.
package storagetest

import (
	"github.com/stretchr/testify/mock"

	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage"
)

// MockStorage is a mock implementation of storage.Storage.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

// User operations

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetActiveHandler(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Complaint operations

func (m *MockStorage) CreateComplaintWithAccess(complaint *models.Complaint, passwordHash string) error {
	args := m.Called(complaint, passwordHash)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id uint) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintByTicketID(ticketID string) (*models.Complaint, error) {
	args := m.Called(ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) ListComplaints(filter storage.ComplaintFilter) ([]models.Complaint, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaintsForHandler(email string, filter storage.ComplaintFilter) ([]models.Complaint, error) {
	args := m.Called(email, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) GetAccessForComplaint(complaintID uint) (*models.ComplaintAccess, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintAccess), args.Error(1)
}

func (m *MockStorage) CreateReply(reply *models.ComplaintReply) error {
	args := m.Called(reply)
	return args.Error(0)
}

func (m *MockStorage) CreateStatusUpdate(update *models.ComplaintStatusUpdate) error {
	args := m.Called(update)
	return args.Error(0)
}

func (m *MockStorage) ListStatusUpdates(complaintID uint) ([]models.ComplaintStatusUpdate, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComplaintStatusUpdate), args.Error(1)
}

// News operations

func (m *MockStorage) CreateArticle(article *models.NewsArticle) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockStorage) GetArticleByID(id uint) (*models.NewsArticle, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsArticle), args.Error(1)
}

func (m *MockStorage) UpdateArticle(article *models.NewsArticle) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockStorage) DeleteArticle(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListArticles(status models.ArticleStatus, page int) ([]models.NewsArticle, error) {
	args := m.Called(status, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NewsArticle), args.Error(1)
}

func (m *MockStorage) ListPublishedArticles(page int) ([]models.NewsArticle, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NewsArticle), args.Error(1)
}

// Activity operations

func (m *MockStorage) SaveActivity(entry *models.ActivityLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStorage) ListActivity(page int, activityType models.ActivityType) ([]models.ActivityLog, error) {
	args := m.Called(page, activityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActivityLog), args.Error(1)
}

// Search operations

func (m *MockStorage) SearchComplaints(query string) ([]models.Complaint, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) SearchArticles(query string) ([]models.NewsArticle, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NewsArticle), args.Error(1)
}

// Dashboard operations

func (m *MockStorage) CountComplaintsByStatus() (map[models.ComplaintStatus]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ComplaintStatus]int64), args.Error(1)
}

func (m *MockStorage) CountComplaintsByPriority() (map[models.ComplaintPriority]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ComplaintPriority]int64), args.Error(1)
}

func (m *MockStorage) CountPublishedArticles() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CacheDashboard(payload []byte) error {
	args := m.Called(payload)
	return args.Error(0)
}

func (m *MockStorage) GetCachedDashboard() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
