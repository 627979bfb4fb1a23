package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"edesign/config"
	"edesign/database"
	"edesign/models"
	"edesign/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePayment creates a hosted Xendit invoice for an order and returns
// the URL the customer is redirected to. The invoice external_id is the
// order id, which is how the webhook correlates the callback later.
func CreatePayment(c *gin.Context) {
	var body struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID is required"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(body.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.Order
	if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	baseURL := config.GetEnv("PUBLIC_BASE_URL", "http://localhost:3000")

	xendit := services.NewXenditClient()
	invoice, err := xendit.CreateInvoice(ctx, services.InvoiceRequest{
		ExternalID:         order.ID.Hex(),
		Amount:             order.TotalAmount,
		Currency:           "IDR",
		Description:        fmt.Sprintf("Payment for Order #%s", order.ID.Hex()),
		SuccessRedirectURL: baseURL + "/payment/success",
		FailureRedirectURL: baseURL + "/payment/failure",
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// Linking the invoice id back is best-effort: the customer already has
	// a usable payment URL at this point.
	_, err = database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"xenditInvoiceId": invoice.ID}},
	)
	if err != nil {
		log.Println("⚠️ Failed to store invoice id on order", order.ID.Hex(), ":", err)
	}

	notifyInvoiceCreated(ctx, order)

	c.JSON(http.StatusOK, gin.H{"invoiceUrl": invoice.InvoiceURL})
}

// notifyInvoiceCreated nudges the customer over WhatsApp when they have a
// phone number on file. Failures are logged and swallowed.
func notifyInvoiceCreated(ctx context.Context, order models.Order) {
	if order.UserID == "" {
		return
	}
	userID, err := primitive.ObjectIDFromHex(order.UserID)
	if err != nil {
		return
	}

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil || user.PhoneNumber == "" {
		return
	}

	message := fmt.Sprintf("Hi %s, your Edesign order #%s is awaiting payment. Total: Rp%d.", user.Name, shortOrderRef(order.ID.Hex()), order.TotalAmount)
	if err := services.NewFonnteClient().SendMessage(ctx, user.PhoneNumber, message); err != nil {
		log.Println("⚠️ Failed to send payment reminder for order", order.ID.Hex(), ":", err)
	}
}
