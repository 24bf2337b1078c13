// message.go - Defines the Message model for the per-order chat

package models

import "time"

// Message is append-only: rows are created and listed, never edited.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"orderId"`
	SenderID  uint      `gorm:"not null" json:"senderId"`
	Sender    *User     `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sender,omitempty"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
