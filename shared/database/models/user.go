package models

import (
	"time"
)

// User roles
const (
	UserRoleAdmin       = "Admin"
	UserRoleCoordinator = "Co-ordinator"
)

// User statuses. "Co-ordinator" is also a valid status value, distinct from
// the role of the same name; the two enumerations are validated independently.
const (
	UserStatusActive      = "Active"
	UserStatusCoordinator = "Co-ordinator"
	UserStatusInactive    = "Inactive"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID uint      `json:"organization_id" gorm:"not null;index"`
	Name           string    `json:"name" gorm:"size:200;not null"`
	Role           string    `json:"role" gorm:"size:20;not null"`
	Email          *string   `json:"email" gorm:"size:200"`
	Status         string    `json:"status" gorm:"size:20;default:'Active'"`
	CreatedAt      time.Time `json:"created_at"`
}
