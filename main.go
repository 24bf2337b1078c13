// main.go - Entry point for the Gamer Store backend server

package main // Declares the package name

import ( // Import required packages
	"log" // Logging

	"go-store-backend/config"     // Project config management
	"go-store-backend/database"   // Database connection and setup
	"go-store-backend/handlers"   // HTTP handlers for API endpoints
	"go-store-backend/mailer"     // Verification email sender
	"go-store-backend/middleware" // Middleware (authentication, CORS)
	"go-store-backend/payment"    // Efí PIX gateway client

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/joho/godotenv" // .env loading for local development
)

func main() { // Main function, program entry point
	// STEP 1: Load configuration and establish connections
	_ = godotenv.Load() // Load .env if present (ignored in production)
	cfg := config.Load()
	cfg.LogStartup() // Report which env vars are set

	if err := database.Connect(cfg.DBPath); err != nil { // Connect to the database
		log.Fatal("DB connection error: ", err) // If error, log and exit
	}
	payment.Connect(cfg) // Efí PIX gateway (credentials validated per charge)
	mailer.Connect(cfg)  // SMTP verification mail

	// STEP 2: Create Gin router and configure routes
	r := gin.Default() // Create a new Gin router (web server)
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, "http://localhost:"+cfg.Port, "http://127.0.0.1:"+cfg.Port))

	// Public routes (no authentication required)
	r.POST("/api/auth/register", handlers.Register)
	r.POST("/api/auth/login", handlers.Login)
	r.GET("/api/auth/verify-email", handlers.VerifyEmail)
	r.GET("/api/products", handlers.ListProducts)
	r.GET("/api/products/:id", handlers.GetProduct)
	r.GET("/api/products/:id/reviews", handlers.ListReviews)
	r.POST("/api/webhooks/efi", handlers.EfiWebhook) // Efí payment notifications

	// Protected routes (require JWT authentication)
	api := r.Group("/api")               // Create a route group for protected endpoints
	api.Use(middleware.AuthMiddleware()) // Apply JWT authentication middleware
	{
		api.POST("/orders", handlers.CreateOrder)
		api.GET("/orders/:id/status", handlers.OrderStatus)
		api.GET("/my-orders", handlers.MyOrders)
		api.GET("/orders/:id/messages", handlers.ListMessages)
		api.POST("/orders/:id/messages", handlers.PostMessage)
		api.POST("/products/:id/reviews", handlers.CreateReview)
	}

	// Admin routes (require ADMIN role in the token)
	admin := r.Group("/api")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", handlers.CreateProduct)
		admin.PUT("/products/:id", handlers.UpdateProduct)
		admin.DELETE("/products/:id", handlers.DeleteProduct)
		admin.GET("/orders/all", handlers.AllOrders)
		admin.PATCH("/orders/:id/deliver", handlers.DeliverOrder)
	}

	// STEP 3: Start the web server
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error: ", err)
	}
}
