package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator" // may moderate any review
	RoleAdmin     UserRole = "admin"     // moderator capability plus catalog management
)

// IsModerator reports whether the role carries the moderator capability.
func (r UserRole) IsModerator() bool {
	return r == RoleModerator || r == RoleAdmin
}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Image        string         `json:"image"` // avatar URL
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	Wishlist     pq.StringArray `gorm:"type:text;default:'{}'" json:"wishlist"` // product slugs, array literal in a text column so sqlite tests can migrate it
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Reviews []Review `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
