// helpers_test.go - Shared scaffolding for handler tests
// Run with: go test ./...

package handlers

import (
	"bytes"                    // For building request bodies
	"encoding/json"            // For encoding/decoding JSON
	"errors"                   // For the failing fake mailer
	"net/http"                 // HTTP request building
	"net/http/httptest"        // HTTP test helpers
	"os"                       // For file operations
	"testing"                  // Go's testing package
	"time"                     // For token expiration

	"go-store-backend/config"     // Project config
	"go-store-backend/database"   // Database connection
	"go-store-backend/mailer"     // Mailer seam
	"go-store-backend/middleware" // Auth middleware
	"go-store-backend/models"     // Store models
	"go-store-backend/payment"    // Payment gateway seam

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/golang-jwt/jwt/v5" // JWT library
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

// fakeGateway stands in for the Efí client in tests.
type fakeGateway struct {
	charge *payment.Charge
	err    error
	calls  int
}

func (f *fakeGateway) CreatePixCharge(total float64, expirationSeconds int) (*payment.Charge, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.charge, nil
}

// fakeMailer records deliveries instead of talking SMTP.
type fakeMailer struct {
	fail bool
	sent []string // recipient addresses
}

func (f *fakeMailer) SendVerification(toEmail, username, verifyURL string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

// setupTestDB removes any existing test DB and creates a new one, and
// installs fresh gateway/mailer fakes through the package seams.
func setupTestDB(t *testing.T) (*fakeGateway, *fakeMailer) {
	t.Helper()
	_ = os.Remove("test_store.db") // Remove old test DB if exists
	if err := database.Connect("test_store.db"); err != nil {
		t.Fatalf("connecting test DB: %v", err)
	}

	gateway := &fakeGateway{charge: &payment.Charge{
		Txid:          "txid-test",
		CopyPasteCode: "00020126pix-copy-paste",
		QRCodeImage:   "data:image/png;base64,AAAA",
	}}
	payment.Client = gateway

	sender := &fakeMailer{}
	mailer.Client = sender

	return gateway, sender
}

// setupRouter returns a Gin engine with the full route table, mirroring
// the wiring in main.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.GET("/api/auth/verify-email", VerifyEmail)
	r.GET("/api/products", ListProducts)
	r.GET("/api/products/:id", GetProduct)
	r.GET("/api/products/:id/reviews", ListReviews)
	r.POST("/api/webhooks/efi", EfiWebhook)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/orders", CreateOrder)
		api.GET("/orders/:id/status", OrderStatus)
		api.GET("/my-orders", MyOrders)
		api.GET("/orders/:id/messages", ListMessages)
		api.POST("/orders/:id/messages", PostMessage)
		api.POST("/products/:id/reviews", CreateReview)
	}

	admin := r.Group("/api")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", CreateProduct)
		admin.PUT("/products/:id", UpdateProduct)
		admin.DELETE("/products/:id", DeleteProduct)
		admin.GET("/orders/all", AllOrders)
		admin.PATCH("/orders/:id/deliver", DeliverOrder)
	}

	return r
}

// createUser inserts a user directly and returns it with a signed
// token carrying its id and role, the way Login would issue one.
func createUser(t *testing.T, username, email, role string, verified bool) (models.User, string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.DefaultCost)
	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if verified {
		now := time.Now()
		user.EmailVerified = &now
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	cfg := config.Load()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(8 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return user, tokenString
}

// doRequest performs a JSON request against the router, optionally with
// a bearer token, and returns the recorded response.
func doRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return out
}
