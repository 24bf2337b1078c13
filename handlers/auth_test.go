// auth_test.go - Tests for registration, verification and login

package handlers

import (
	"net/http"
	"testing"

	"go-store-backend/database"
	"go-store-backend/models"

	"github.com/stretchr/testify/assert"
)

// TestRegisterVerifyLogin walks the whole account lifecycle: register,
// fail to log in while unverified, verify with the issued token, then
// log in successfully.
func TestRegisterVerifyLogin(t *testing.T) {
	_, sender := setupTestDB(t)
	router := setupRouter()

	// --- Register ---
	w := doRequest(router, "POST", "/api/auth/register", RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw1234",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"a@x.com"}, sender.sent)

	// --- Login before verification is rejected regardless of password ---
	w = doRequest(router, "POST", "/api/auth/login", LoginInput{Email: "a@x.com", Password: "pw1234"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// --- Verify with the issued token ---
	var user models.User
	assert.NoError(t, database.DB.Where("email = ?", "a@x.com").First(&user).Error)
	assert.NotNil(t, user.EmailVerificationToken)
	assert.Nil(t, user.EmailVerified)

	w = doRequest(router, "GET", "/api/auth/verify-email?token="+*user.EmailVerificationToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// The token is consumed exactly once
	w = doRequest(router, "GET", "/api/auth/verify-email?token="+*user.EmailVerificationToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// --- Login now succeeds and never exposes the password hash ---
	w = doRequest(router, "POST", "/api/auth/login", LoginInput{Email: "a@x.com", Password: "pw1234"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	loggedUser, ok := body["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "alice", loggedUser["username"])
	_, hasPassword := loggedUser["password"]
	assert.False(t, hasPassword)
}

// TestRegisterDuplicate asserts a duplicate email or username is a
// conflict and creates no extra rows.
func TestRegisterDuplicate(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := doRequest(router, "POST", "/api/auth/register", RegisterInput{
		Username: "bob", Email: "b@x.com", Password: "pw1234",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same email
	w = doRequest(router, "POST", "/api/auth/register", RegisterInput{
		Username: "bob2", Email: "b@x.com", Password: "pw1234",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Same username
	w = doRequest(router, "POST", "/api/auth/register", RegisterInput{
		Username: "bob", Email: "b2@x.com", Password: "pw1234",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// TestRegisterMailFailureRollsBack asserts the user row does not
// survive a failed verification mail.
func TestRegisterMailFailureRollsBack(t *testing.T) {
	_, sender := setupTestDB(t)
	sender.fail = true
	router := setupRouter()

	w := doRequest(router, "POST", "/api/auth/register", RegisterInput{
		Username: "carol", Email: "c@x.com", Password: "pw1234",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", "c@x.com").Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestLoginFailures covers the unknown-email and wrong-password arms.
func TestLoginFailures(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	createUser(t, "dave", "d@x.com", models.RoleCustomer, true)

	w := doRequest(router, "POST", "/api/auth/login", LoginInput{Email: "nobody@x.com", Password: "senha123"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, "POST", "/api/auth/login", LoginInput{Email: "d@x.com", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "POST", "/api/auth/login", LoginInput{Email: "d@x.com", Password: "senha123"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRegisterValidation rejects incomplete payloads.
func TestRegisterValidation(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := doRequest(router, "POST", "/api/auth/register", map[string]string{"username": "eve"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
