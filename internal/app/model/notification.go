package model

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeReviewSubmitted NotificationType = "review_submitted"
	NotificationTypeReviewApproved  NotificationType = "review_approved"
	NotificationTypeReviewRejected  NotificationType = "review_rejected"
	NotificationTypeReviewReported  NotificationType = "review_reported"
)

// Notification is an in-app notification shown in the user's inbox.
// The mailer delivers the same events by email; both are best-effort.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`

	Title   string `gorm:"type:text;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Link    string `gorm:"type:text" json:"link"`

	IsRead bool `gorm:"default:false;index" json:"is_read"`

	RelatedReviewID  *uint `gorm:"index" json:"related_review_id,omitempty"`
	RelatedProductID *uint `gorm:"index" json:"related_product_id,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
