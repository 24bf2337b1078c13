// auth.go - JWT authentication middleware
// This file implements authentication and authorization for the API
//
// Authentication Flow:
// 1. Extract JWT token from Authorization header
// 2. Validate token signature and expiration
// 3. Extract user ID and role from token claims
// 4. Store both in context for handlers
//
// Authorization Flow (Admin):
// 1. Run authentication middleware first
// 2. Check the role claim carried by the token
// 3. Allow/deny access based on role
//
// The role travels inside the signed token, so admin routes do not
// re-query the user on every request. Handlers that destroy data
// re-check the stored role themselves (see product deletion).

package middleware // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes (401, 403, etc.)
	"strings"  // String operations (for header parsing)

	"go-store-backend/config" // Project config (for JWT secret)
	"go-store-backend/models" // Role constants

	"github.com/gin-gonic/gin"     // Gin web framework (for middleware)
	"github.com/golang-jwt/jwt/v5" // JWT library (for token validation)
)

// Context keys set by AuthMiddleware and read by handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// authenticate - Validates the bearer token and stores the caller's id
// and role in the Gin context. Returns false after aborting with 401
// when the token is missing or invalid. It never advances the handler
// chain itself, so callers can run further checks before c.Next().
func authenticate(c *gin.Context) bool {
	// STEP 1: Extract Authorization header
	header := c.GetHeader("Authorization")                     // Get Authorization header
	if header == "" || !strings.HasPrefix(header, "Bearer ") { // If missing or invalid format
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"}) // Return 401 Unauthorized
		return false
	}

	// STEP 2: Parse JWT token
	tokenStr := strings.TrimPrefix(header, "Bearer ")                               // Remove 'Bearer ' prefix
	cfg := config.Load()                                                            // Load config for JWT secret
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) { // Parse JWT
		return []byte(cfg.JWTSecret), nil // Provide secret key for validation
	})
	if err != nil || !token.Valid { // If token is invalid or expired
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"}) // Return 401 Unauthorized
		return false
	}

	// STEP 3: Extract user ID and role from token and store in context
	// Subsequent handlers read these instead of re-parsing the token.
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if userID, exists := claims[ContextUserID]; exists {
			c.Set(ContextUserID, userID) // Store user ID in Gin context (float64, per JWT numbers)
		}
		if role, exists := claims[ContextRole]; exists {
			c.Set(ContextRole, role) // Store role claim in Gin context
		}
	}

	return true
}

// AuthMiddleware - Returns a Gin middleware function for JWT authentication
// This middleware validates the bearer token and stores the caller's
// id and role in the Gin context for later use.
func AuthMiddleware() gin.HandlerFunc { // Returns a Gin middleware function
	return func(c *gin.Context) { // Middleware handler (runs before each request)
		if !authenticate(c) {
			return // Authentication failed, request already aborted
		}
		c.Next() // Continue to next handler (authentication successful)
	}
}

// AdminMiddleware - Returns a Gin middleware function for admin access control
// It authenticates first, then checks the role claim carried by the
// verified token. The chain only advances once both checks pass.
func AdminMiddleware() gin.HandlerFunc { // Returns a Gin middleware function for admin access
	return func(c *gin.Context) { // Middleware handler (runs before admin endpoints)
		// STEP 1: Authenticate without advancing the chain
		if !authenticate(c) {
			return // Exit early - authentication failed
		}

		// STEP 2: Check the role claim
		role, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		if roleStr, ok := role.(string); !ok || roleStr != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next() // Continue to next handler (admin access granted)
	}
}

// UserID - Extracts the authenticated user's id from the Gin context
// JWT stores all numbers as float64, but the database uses uint.
func UserID(c *gin.Context) uint {
	v, _ := c.Get(ContextUserID)
	f, _ := v.(float64) // JWT numbers are float64
	return uint(f)
}

// Role - Extracts the authenticated user's role claim from the Gin context
func Role(c *gin.Context) string {
	v, _ := c.Get(ContextRole)
	s, _ := v.(string)
	return s
}
