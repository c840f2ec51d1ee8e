package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"citizendesk/backend/internal/models"
)

func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetActiveHandler looks up an active complaint_handler by email. Used to
// validate assignment targets.
func (s *Service) GetActiveHandler(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ? AND role = ? AND active = ?",
		email, models.RoleComplaintHandler, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
