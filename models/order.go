// order.go - Defines the Order and OrderItem models

package models

import "time"

// Order lifecycle. Transitions are monotonic: the payment webhook only
// promotes PENDING to PAID, and delivery marking sets DELIVERED.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusDelivered = "DELIVERED"
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"userId"` // Buyer
	User      *User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	Total     float64     `gorm:"not null" json:"total"`
	Status    string      `gorm:"default:'PENDING'" json:"status"`
	Txid      string      `gorm:"unique;not null" json:"txid"` // Payment provider transaction id (idempotency key)
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"not null;index" json:"orderId"`
	ProductID uint     `gorm:"not null" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
}
