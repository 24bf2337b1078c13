// webhook.go - Efí payment notification intake
// The provider expects an immediate acknowledgment, so the handler
// responds 200 before processing and settles the order in the
// background. Malformed or unmatched notifications are logged and
// dropped; nothing is ever surfaced back to the provider.

package handlers

import (
	"log"
	"net/http"

	"go-store-backend/database"
	"go-store-backend/models"

	"github.com/gin-gonic/gin"
)

// PixNotification is one settled PIX inside a provider notification.
type PixNotification struct {
	Txid string `json:"txid"`
}

// EfiWebhookPayload mirrors the shape of Efí PIX notifications.
type EfiWebhookPayload struct {
	Pix []PixNotification `json:"pix"`
}

// EfiWebhook - Acknowledges the provider, then settles asynchronously.
func EfiWebhook(c *gin.Context) {
	var payload EfiWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("webhook: unreadable Efí payload: %v", err)
		c.Status(http.StatusOK) // Acknowledge anyway; the provider is never failed
		return
	}

	c.Status(http.StatusOK)

	go SettlePixNotification(payload)
}

// SettlePixNotification - Promotes the matching PENDING order to PAID.
// The guarded UPDATE keyed on (txid, PENDING) makes duplicate webhook
// deliveries a no-op: the status becomes PAID exactly once in effect,
// and never regresses from DELIVERED.
func SettlePixNotification(payload EfiWebhookPayload) {
	if len(payload.Pix) == 0 || payload.Pix[0].Txid == "" {
		log.Printf("webhook: Efí notification without txid, dropping")
		return
	}
	txid := payload.Pix[0].Txid

	res := database.DB.
		Model(&models.Order{}).
		Where("txid = ? AND status = ?", txid, models.OrderStatusPending).
		Update("status", models.OrderStatusPaid)
	if res.Error != nil {
		log.Printf("webhook: settling txid %s failed: %v", txid, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		log.Printf("webhook: no pending order for txid %s, dropping", txid)
		return
	}
	log.Printf("webhook: order with txid %s marked as paid", txid)
}
