// order.go - Handles order creation, status polling and delivery
// The purchase flow is: product lookup -> PIX charge at the gateway ->
// order + item persisted in one transaction. Any failure leaves no
// partial order behind.

package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-store-backend/database"
	"go-store-backend/middleware"
	"go-store-backend/models"
	"go-store-backend/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// chargeExpirationSeconds is the PIX payment window (4 minutes).
const chargeExpirationSeconds = 240

type OrderInput struct { // Struct for order creation input
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrder - Creates a PENDING order backed by a PIX charge.
func CreateOrder(c *gin.Context) {
	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "informe produto e quantidade válidos"})
		return
	}
	userID := middleware.UserID(c)

	// STEP 1: Look up the product
	var product models.Product
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "produto não encontrado"})
			return
		}
		log.Printf("order: product lookup %d failed: %v", input.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao processar o pedido"})
		return
	}

	total := product.Price * float64(input.Quantity)

	// STEP 2: Create the PIX charge at the gateway. Gateway detail is
	// logged inside the payment package; the caller only gets a
	// generic failure.
	charge, err := payment.Client.CreatePixCharge(total, chargeExpirationSeconds)
	if err != nil {
		log.Printf("order: charge creation failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao processar o pedido"})
		return
	}

	// STEP 3: Persist order and item together. If this fails, nothing
	// is written (the stray charge simply expires at the provider).
	order := models.Order{
		UserID: userID,
		Total:  total,
		Status: models.OrderStatusPending,
		Txid:   charge.Txid,
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: input.Quantity},
		},
	}
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		log.Printf("order: persistence failed for txid %s: %v", charge.Txid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao processar o pedido"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pedido criado. Aguardando pagamento.",
		"order":   order,
		"pix": gin.H{
			"qrCodeImage":     charge.QRCodeImage,
			"qrCodeCopyPaste": charge.CopyPasteCode,
		},
	})
}

// OrderStatus - Polled by the storefront while waiting for payment.
func OrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := database.DB.Select("status").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pedido não encontrado"})
			return
		}
		log.Printf("order: status lookup %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao buscar o status do pedido"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.Status})
}

// MyOrders - The caller's orders, newest first, with items and their
// products.
func MyOrders(c *gin.Context) {
	userID := middleware.UserID(c)

	var orders []models.Order
	err := database.DB.
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		log.Printf("order: listing for user %d failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao buscar seus pedidos"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AllOrders - Admin view over every order, with buyer and items.
func AllOrders(c *gin.Context) {
	var orders []models.Order
	err := database.DB.
		Preload("User").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		log.Printf("order: admin listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao buscar os pedidos"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// DeliverOrder - Admin marks an order DELIVERED. The transition is
// unconditional: no check that the order was PAID first.
func DeliverOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pedido não encontrado"})
			return
		}
		log.Printf("order: delivery lookup %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao atualizar o pedido"})
		return
	}

	if err := database.DB.Model(&order).Update("status", models.OrderStatusDelivered).Error; err != nil {
		log.Printf("order: delivery update %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro inesperado ao atualizar o pedido"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pedido marcado como entregue!", "order": order})
}
