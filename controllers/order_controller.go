package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"edesign/database"
	"edesign/models"
	"edesign/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateOrder turns a cart snapshot into a PENDING order. Line prices are
// recomputed from the products collection; a single missing product
// aborts the whole checkout with nothing written.
func CreateOrder(c *gin.Context) {
	var body struct {
		CartItems       []checkoutItem `json:"cartItems"`
		ShippingAddress string         `json:"shippingAddress"`
		UserID          string         `json:"userId"`
		CustomerName    string         `json:"customerName"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(body.CartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if body.UserID == "" || body.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User information is missing"})
		return
	}

	var productIDs []primitive.ObjectID
	for _, item := range body.CartItems {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}
		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
			return
		}
		productIDs = append(productIDs, oid)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	productsByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID.Hex()] = p
	}

	items, subtotal, err := buildOrderItems(body.CartItems, productsByID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tax, shipping, total := computeTotals(subtotal)

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          body.UserID,
		CustomerName:    body.CustomerName,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		TotalAmount:     total,
		ShippingAddress: body.ShippingAddress,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := database.OrderCollection.InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orderId": order.ID.Hex()})
}

func GetOrderByID(c *gin.Context) {
	orderID := c.Param("orderId")
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateShippingAddress edits the delivery address of an order that has
// not been paid yet. Once the webhook flips the status, edits are refused.
func UpdateShippingAddress(c *gin.Context) {
	orderID := c.Param("orderId")
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body struct {
		ShippingAddress string `json:"shippingAddress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "status": models.StatusPending},
		bson.M{"$set": bson.M{"shippingAddress": body.ShippingAddress, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}
	if result.MatchedCount == 0 {
		var order models.Order
		if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found to update"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Shipping address can no longer be changed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully"})
}

// NotifySuccess sends the payment confirmation over WhatsApp. Delivery is
// best-effort: a Fonnte failure is logged and the call still succeeds.
func NotifySuccess(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil || order.UserID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order or associated user not found"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(order.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User phone number not found"})
		return
	}

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil || user.PhoneNumber == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "User phone number not found"})
		return
	}

	fonnte := services.NewFonnteClient()
	if err := fonnte.SendMessage(ctx, user.PhoneNumber, paymentSuccessMessage(user.Name, body.OrderID)); err != nil {
		log.Println("❌ Fonnte notification failed for order", body.OrderID, ":", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent successfully"})
}

func paymentSuccessMessage(name, orderID string) string {
	return fmt.Sprintf("🎉 Thank you, %s! Your payment for order #%s has been successfully processed. We will prepare your items for shipment shortly.", name, shortOrderRef(orderID))
}

func shortOrderRef(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}
