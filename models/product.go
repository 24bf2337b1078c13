// product.go - Defines the Product model for the catalog

package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	SellerID    uint      `gorm:"not null" json:"sellerId"` // Admin who listed the product
	Seller      *User     `gorm:"foreignKey:SellerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
