package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"edesign/database"
	"edesign/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XenditWebhook receives asynchronous invoice callbacks. The shared
// callback token is checked before the body is even parsed. PAID flips
// the order to PAID (safe to deliver twice), EXPIRED flips it to FAILED,
// every other status is acknowledged without touching the order.
func XenditWebhook(c *gin.Context) {
	token := c.GetHeader("x-callback-token")
	if token == "" || token != os.Getenv("XENDIT_CALLBACK_TOKEN") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payload struct {
		ID         string `json:"id"`
		ExternalID string `json:"external_id"`
		Status     string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	log.Println("Webhook received for external_id:", payload.ExternalID, "status:", payload.Status)

	var newStatus string
	switch payload.Status {
	case "PAID":
		newStatus = models.StatusPaid
	case "EXPIRED":
		newStatus = models.StatusFailed
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Webhook received successfully"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(payload.ExternalID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": newStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook received successfully"})
}
