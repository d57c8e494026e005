package models

import (
	"time"
)

// Organization statuses
const (
	OrgStatusActive   = "Active"
	OrgStatusBlocked  = "Blocked"
	OrgStatusInactive = "Inactive"
)

type Organization struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID   string    `json:"organization_id" gorm:"size:150;uniqueIndex;not null"`
	Name             string    `json:"name" gorm:"size:200;not null"`
	Slug             string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Email            string    `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Contact          *string   `json:"contact" gorm:"size:200"`
	Phone            *string   `json:"phone" gorm:"size:20"`
	AlternativePhone *string   `json:"alternative_phone" gorm:"size:20"`
	Timezone         string    `json:"timezone" gorm:"size:100;default:'Asia/Colombo'"`
	Region           *string   `json:"region" gorm:"size:100"`
	Language         string    `json:"language" gorm:"size:50;default:'English'"`
	WebsiteURL       *string   `json:"website_url" gorm:"size:500"`
	MaxCoordinators  int       `json:"max_coordinators" gorm:"default:5"`
	LogoURL          *string   `json:"logo_url" gorm:"size:500"`
	Status           string    `json:"status" gorm:"size:20;default:'Active'"`
	CreatedAt        time.Time `json:"created_at"`

	// Relations
	Users []User `json:"-" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}
