// review.go - Defines the Review model for product ratings

package models

import "time"

// Review is unique per (user, product); the composite index backs the
// one-review-per-buyer rule when duplicate requests race.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"productId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
