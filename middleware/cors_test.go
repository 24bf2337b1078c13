// cors_test.go - Tests for the CORS allow-list

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("http://localhost:3000", ""))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doCORSRequest(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := corsRouter()

	w := doCORSRequest(r, "GET", "http://localhost:3000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSRejectsExtendedOrigin: an origin that merely starts with an
// allowed entry must not be admitted.
func TestCORSRejectsExtendedOrigin(t *testing.T) {
	r := corsRouter()

	for _, origin := range []string{
		"http://localhost:3000.evil.com",
		"http://localhost:30001",
		"http://evil.com",
	} {
		w := doCORSRequest(r, "GET", origin)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), "origin %s", origin)
	}

	// An empty allow-list entry never matches anything
	w := doCORSRequest(r, "GET", "")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	r := corsRouter()

	w := doCORSRequest(r, "OPTIONS", "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
