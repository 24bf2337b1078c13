// product.go - Handles the product catalog (public reads, admin writes)

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"go-store-backend/database"
	"go-store-backend/middleware"
	"go-store-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct { // Struct for product create/update input
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
}

// parseID - Parses a numeric path parameter, returning ok=false after
// writing a 400 response.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador inválido"})
		return 0, false
	}
	return uint(id), true
}

// ListProducts - Public catalog listing, newest first.
func ListProducts(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		log.Printf("product: listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao buscar os produtos"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct - Public single-product lookup.
func GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "produto não encontrado"})
			return
		}
		log.Printf("product: lookup %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao buscar o produto"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct - Admin only. The seller is the logged-in admin.
func CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "informe nome e preço válidos"})
		return
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		SellerID:    middleware.UserID(c),
	}
	if err := database.DB.Create(&product).Error; err != nil {
		log.Printf("product: creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao criar o produto"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct - Admin only.
func UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "informe nome e preço válidos"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "produto não encontrado"})
			return
		}
		log.Printf("product: lookup %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao editar o produto"})
		return
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"image_url":   input.ImageURL,
		"category":    input.Category,
	}
	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		log.Printf("product: update %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao editar o produto"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct - Admin only. Deletion is destructive, so the stored
// role is re-checked here: a demoted admin holding a still-valid token
// must not be able to remove catalog entries.
func DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var caller models.User
	if err := database.DB.First(&caller, middleware.UserID(c)).Error; err != nil || caller.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "acesso negado"})
		return
	}

	if err := database.DB.Delete(&models.Product{}, id).Error; err != nil {
		log.Printf("product: deletion %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao deletar o produto"})
		return
	}
	c.Status(http.StatusNoContent)
}
