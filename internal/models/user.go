package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines which parts of the admin portal a staff member can use.
// Permissions are resolved through the capability table in internal/auth,
// never by comparing role strings inline.
type Role string

const (
	RoleAttorneyGeneral      Role = "attorney_general"
	RoleHeadOfCommunications Role = "head_of_communications"
	RoleComplaintHandler     Role = "complaint_handler"
)

// User is an internal staff account for the admin portal.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"` // UUID
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:text;not null" json:"role"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// ValidRole reports whether r is one of the known staff roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAttorneyGeneral, RoleHeadOfCommunications, RoleComplaintHandler:
		return true
	}
	return false
}
