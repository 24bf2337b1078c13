// cors.go - CORS allow-list for the storefront origin

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware - Allows cross-origin requests from the configured
// storefront origins. Unknown origins get no CORS headers, which the
// browser treats as a denial. Origins must match exactly: a prefix
// match would also admit hosts like allowed-origin.evil.com.
func CORSMiddleware(allowedOrigins ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range allowedOrigins {
			if allowed != "" && origin == allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				break
			}
		}

		if c.Request.Method == http.MethodOptions { // Preflight
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
