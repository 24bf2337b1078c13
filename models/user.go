// user.go - Defines the User model for the database

package models // Declares the package name

import "time"

// Roles a user can hold. Catalog mutation and order-wide visibility
// are gated on RoleAdmin.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type User struct { // User struct represents a user in the database
	ID                     uint       `gorm:"primaryKey" json:"id"`            // Unique user ID (primary key)
	Username               string     `gorm:"unique;not null" json:"username"` // Display name (must be unique)
	Email                  string     `gorm:"unique;not null" json:"email"`    // User's email (must be unique, cannot be null)
	Password               string     `gorm:"not null" json:"-"`               // Hashed password (never serialized)
	Role                   string     `gorm:"default:'CUSTOMER'" json:"role"`  // User role (CUSTOMER/ADMIN)
	EmailVerified          *time.Time `json:"emailVerified"`                   // Set once the verification link is used
	EmailVerificationToken *string    `gorm:"unique" json:"-"`                 // One-shot token, cleared on verification
	CreatedAt              time.Time  `json:"createdAt"`                       // When the account was registered
}
