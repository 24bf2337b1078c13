// chat.go - Per-order chat between the buyer and the store's admins
// Reads are restricted to the order's owner or an admin; writes only
// require authentication (the storefront is what points buyers at
// their own orders).

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

type MessageInput struct { // Struct for chat message input
	Content string `json:"content" binding:"required"`
}

// findOrder loads an order by path id, answering 404 when absent.
func findOrder(c *gin.Context) (*models.Order, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pedido não encontrado"})
			return nil, false
		}
		log.Printf("chat: order lookup %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao carregar o chat"})
		return nil, false
	}
	return &order, true
}

// ListMessages - All messages for an order, oldest first, with sender
// id/username/role. Only the order's owner or an admin may read.
func ListMessages(c *gin.Context) {
	order, ok := findOrder(c)
	if !ok {
		return
	}

	if order.UserID != middleware.UserID(c) && middleware.Role(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "acesso negado"})
		return
	}

	var messages []models.Message
	err := database.DB.
		Where("order_id = ?", order.ID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("chat: listing for order %d failed: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao carregar o chat"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// PostMessage - Appends a message to an order's chat. Ownership is not
// enforced on write, only on read; the content must be non-empty after
// trimming.
func PostMessage(c *gin.Context) {
	order, ok := findOrder(c)
	if !ok {
		return
	}

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "o conteúdo da mensagem é obrigatório"})
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "o conteúdo da mensagem é obrigatório"})
		return
	}

	message := models.Message{
		OrderID:  order.ID,
		SenderID: middleware.UserID(c),
		Content:  content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("chat: posting to order %d failed: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao enviar a mensagem"})
		return
	}
	c.JSON(http.StatusCreated, message)
}
