package testutil

import (
	"testing"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/utils"
	"gorm.io/gorm"
)

const (
	DefaultUserPassword  = "Test123456"
	DefaultAdminPassword = "Admin123456"
)

// CreateTestUser inserts a user with a hashed password
func CreateTestUser(t *testing.T, db *gorm.DB, name, email, password string, role models.Role) *models.User {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// DefaultTestUser inserts a regular user
func DefaultTestUser(t *testing.T, db *gorm.DB) *models.User {
	return CreateTestUser(t, db, "Test User", "test@example.com", DefaultUserPassword, models.RoleUser)
}

// DefaultAdminUser inserts an admin user
func DefaultAdminUser(t *testing.T, db *gorm.DB) *models.User {
	return CreateTestUser(t, db, "Admin", "admin@example.com", DefaultAdminPassword, models.RoleAdmin)
}

// CreateTestProject inserts a project
func CreateTestProject(t *testing.T, db *gorm.DB, title string, featured bool) *models.Project {
	project := &models.Project{
		Title:       title,
		Description: title + " description",
		Tech:        []string{"Go", "React"},
		Image:       models.DefaultIcon,
		Featured:    featured,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}
