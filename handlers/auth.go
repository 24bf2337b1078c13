// auth.go - Handles user registration, login and email verification

package handlers // Declares the package name

import ( // Import required packages
	"errors"   // For sentinel errors and errors.Is
	"fmt"      // For building the verification URL
	"log"      // Logging internal failures
	"net/http" // HTTP status codes
	"time"     // For token expiration

	"go-store-backend/config"   // Project config
	"go-store-backend/database" // Database connection
	"go-store-backend/mailer"   // Verification mail
	"go-store-backend/models"   // Store models

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Verification token generation
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // For transactions and ErrRecordNotFound
)

type RegisterInput struct { // Struct for registration input
	Username string `json:"username" binding:"required"`    // Username (required)
	Email    string `json:"email" binding:"required,email"` // Email (required)
	Password string `json:"password" binding:"required"`    // Password (required)
}

type LoginInput struct { // Struct for login input
	Email    string `json:"email" binding:"required"`    // Email (required)
	Password string `json:"password" binding:"required"` // Password (required)
}

var errUserExists = errors.New("usuário ou email já cadastrado")

// Register - Creates a user inside a single all-or-nothing unit of
// work: conflict check, user row and verification mail either all
// happen or none do. A mail failure rolls the user back.
func Register(c *gin.Context) {
	var input RegisterInput                          // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse JSON input
		c.JSON(http.StatusBadRequest, gin.H{"error": "informe nome de usuário, email e senha válidos"})
		return
	}

	cfg := config.Load()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// STEP 1: Reject duplicate username or email
		var existing models.User
		err := tx.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error
		if err == nil {
			return errUserExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// STEP 2: Create the user with hashed password and a one-shot token
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		token := uuid.NewString()
		user := models.User{
			Username:               input.Username,
			Email:                  input.Email,
			Password:               string(hash),
			Role:                   models.RoleCustomer,
			EmailVerificationToken: &token,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		// STEP 3: Send the verification mail. If this fails the
		// transaction aborts and the user row never persists.
		verifyURL := fmt.Sprintf("%s/api/auth/verify-email?token=%s", cfg.BaseURL, token)
		return mailer.Client.SendVerification(user.Email, user.Username, verifyURL)
	})

	if err != nil {
		if errors.Is(err, errUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": errUserExists.Error()})
			return
		}
		log.Printf("auth: registration failed for %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível concluir o registro, tente novamente"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registro quase completo! Verifique sua caixa de entrada para ativar sua conta."})
}

// Login - Validates credentials and issues a signed token carrying the
// user's id and role. Unverified accounts are rejected before the
// password is even checked.
func Login(c *gin.Context) {
	var input LoginInput                             // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse JSON input
		c.JSON(http.StatusBadRequest, gin.H{"error": "informe email e senha"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não encontrado"})
			return
		}
		log.Printf("auth: login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado durante o login"})
		return
	}

	if user.EmailVerified == nil { // Account not activated yet
		c.JSON(http.StatusForbidden, gin.H{"error": "sua conta não foi ativada, verifique seu email"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil { // Check password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "senha inválida"})
		return
	}

	// JWT generation: id and role travel in the token (8 hour lifetime)
	cfg := config.Load()                                              // Load config for JWT secret
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{ // Create JWT token
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(8 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret)) // Sign token
	if err != nil {
		log.Printf("auth: token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado durante o login"})
		return
	}

	// Password is excluded from the payload by its json:"-" tag.
	c.JSON(http.StatusOK, gin.H{"message": "login bem-sucedido", "user": user, "token": tokenString})
}

// VerifyEmail - Consumes the verification token exactly once, marking
// the account verified and clearing the token.
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token de verificação ausente"})
		return
	}

	var user models.User
	if err := database.DB.Where("email_verification_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "token de verificação inválido ou expirado"})
			return
		}
		log.Printf("auth: verification lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao verificar o email"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_verified":           &now,
		"email_verification_token": nil,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("auth: verification update failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao verificar o email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verificado com sucesso! Você já pode fazer o login."})
}
