package model

import (
	"time"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Valid reports whether s is a known moderation status.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// ReviewImage is an image attachment on a review.
type ReviewImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ModeratorResponse is an optional note a moderator leaves on a review,
// typically when rejecting it.
type ModeratorResponse struct {
	Comment   string     `gorm:"type:text" json:"comment,omitempty"`
	UserID    *uint      `json:"user_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Review is a product review. One review per (author, product) pair,
// enforced by a compound unique index so concurrent submissions cannot
// both get through. Reviews are hard-deleted: a removed review frees the
// (author, product) slot and must drop out of the aggregate immediately.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint    `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"user"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_reviews_user_product;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Rating  int           `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title   string        `json:"title,omitempty"`
	Comment string        `gorm:"type:text;not null" json:"comment"`
	Images  []ReviewImage `gorm:"serializer:json" json:"images,omitempty"`

	Verified bool `gorm:"default:false" json:"verified"` // verified purchase
	Helpful  int  `gorm:"default:0" json:"helpful"`      // helpful vote counter
	Reported bool `gorm:"default:false;index" json:"reported"`

	Status   ReviewStatus      `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Response ModeratorResponse `gorm:"embedded;embeddedPrefix:response_" json:"response,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
