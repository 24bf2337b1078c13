// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"time" // For admin verification timestamp

	"go-store-backend/config" // Project config
	"go-store-backend/models" // Store models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM
)

var DB *gorm.DB // Global variable to hold the database connection (pointer to gorm.DB)

func Connect(dbPath string) error { // Connect opens the database and runs migrations
	var err error                                            // Declare error variable
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{}) // Open SQLite DB
	if err != nil {                                          // If error, return it
		return err
	}

	// Auto-migrate all store models (create tables and indexes if needed)
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Message{},
		&models.Review{},
	); err != nil {
		return err
	}

	// Create default admin user if configured
	return createDefaultAdmin()
}

// createDefaultAdmin - Creates a default admin user if configured and none exists
// This uses environment variables for security instead of hardcoded credentials
func createDefaultAdmin() error {
	cfg := config.Load() // Load configuration

	// Only create admin if explicitly configured
	if !cfg.CreateAdmin || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// Check if any admin user exists
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		// Seeded admins are born verified; they never go through the
		// email verification flow.
		now := time.Now()
		adminUser := models.User{
			Username:      cfg.AdminUsername,
			Email:         cfg.AdminEmail,
			Password:      string(hash),
			Role:          models.RoleAdmin,
			EmailVerified: &now,
		}

		if err := DB.Create(&adminUser).Error; err != nil {
			return err
		}
	}

	return nil
}
