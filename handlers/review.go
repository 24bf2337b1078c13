// review.go - Product reviews, gated on purchase history
// A review requires at least one PAID or DELIVERED order by the caller
// containing the product, and each buyer reviews a product at most
// once.

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"go-store-backend/database"
	"go-store-backend/middleware"
	"go-store-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewInput struct { // Struct for review input
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview - Validates the rating, checks the purchase gate, then
// rejects duplicates before persisting.
func CreateReview(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a avaliação deve ser um número entre 1 e 5"})
		return
	}

	// STEP 1: Purchase gate - an order of this user containing this
	// product with PAID or DELIVERED status must exist.
	var purchased int64
	err := database.DB.
		Model(&models.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND orders.status IN ? AND order_items.product_id = ?",
			userID, []string{models.OrderStatusPaid, models.OrderStatusDelivered}, productID).
		Count(&purchased).Error
	if err != nil {
		log.Printf("review: purchase check failed for user %d product %d: %v", userID, productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao enviar a avaliação"})
		return
	}
	if purchased == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "você só pode avaliar produtos que já comprou"})
		return
	}

	// STEP 2: One review per (user, product)
	var existing models.Review
	err = database.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "você já avaliou este produto"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("review: duplicate check failed for user %d product %d: %v", userID, productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao enviar a avaliação"})
		return
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		// The composite unique index catches racing duplicates; any
		// other storage failure is an internal error like elsewhere.
		if isDuplicateReviewErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "você já avaliou este produto"})
			return
		}
		log.Printf("review: creation failed for user %d product %d: %v", userID, productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao enviar a avaliação"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

// isDuplicateReviewErr reports whether a review insert failed on the
// (user, product) unique index. GORM only translates driver errors to
// ErrDuplicatedKey when configured to, so the SQLite message is
// checked as well.
func isDuplicateReviewErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ListReviews - Public listing of a product's reviews, newest first,
// with the reviewer's username.
func ListReviews(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var reviews []models.Review
	err := database.DB.
		Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		log.Printf("review: listing for product %d failed: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao buscar as avaliações"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
