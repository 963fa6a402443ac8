package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Base carries the identifier and timestamps shared by every document.
// IDs are generated in Go so the same models migrate on postgres and sqlite.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type User struct {
	Base
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// All lists every model for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Skill{},
		&About{},
		&SocialLinks{},
		&Resume{},
		&Coffee{},
		&Payment{},
		&CoffeePurchase{},
		&Contact{},
	}
}
