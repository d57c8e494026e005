package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"orgadmin-backend/shared/database/models"
)

// SeedDatabase seeds the database with a demo organization and its admin user
func SeedDatabase(db *gorm.DB) error {
	log.Println("🌱 Checking database seed data...")

	org, created, err := seedDemoOrganization(db)
	if err != nil {
		return err
	}

	usersCreated, err := seedDemoUsers(db, org)
	if err != nil {
		return err
	}

	if created || usersCreated > 0 {
		log.Printf("✅ Database seeding completed (%d users created)", usersCreated)
	} else {
		log.Println("✅ Database seed data is up to date")
	}

	return nil
}

func seedDemoOrganization(db *gorm.DB) (*models.Organization, bool, error) {
	slug := "demo-org"

	var existing models.Organization
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return &existing, false, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, false, fmt.Errorf("failed to check demo organization: %w", err)
	}

	org := models.Organization{
		OrganizationID:  fmt.Sprintf("%s-%d", strings.ToUpper(slug), time.Now().UnixMilli()),
		Name:            "Demo Organization",
		Slug:            slug,
		Email:           "demo@example.com",
		Timezone:        "Asia/Colombo",
		Language:        "English",
		MaxCoordinators: 5,
		Status:          models.OrgStatusActive,
	}

	if err := db.Create(&org).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create demo organization: %w", err)
	}

	log.Printf("📦 Created demo organization: %s", org.OrganizationID)
	return &org, true, nil
}

func seedDemoUsers(db *gorm.DB, org *models.Organization) (int, error) {
	users := []models.User{
		{OrganizationID: org.ID, Name: "Demo Admin", Role: models.UserRoleAdmin, Status: models.UserStatusActive},
		{OrganizationID: org.ID, Name: "Demo Co-ordinator", Role: models.UserRoleCoordinator, Status: models.UserStatusActive},
	}

	created := 0
	for _, user := range users {
		var existing models.User
		err := db.Where("organization_id = ? AND name = ?", org.ID, user.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("failed to check demo user: %w", err)
		}

		if err := db.Create(&user).Error; err != nil {
			return created, fmt.Errorf("failed to create demo user %q: %w", user.Name, err)
		}
		created++
	}

	return created, nil
}
