package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
	StatusShipped = "SHIPPED"
)

// OrderItem snapshots the product name and price at order-creation time.
type OrderItem struct {
	ProductID string `bson:"productId" json:"productId"`
	Name      string `bson:"name" json:"name"`
	Price     int64  `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId,omitempty" json:"userId,omitempty"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        int64              `bson:"subtotal" json:"subtotal"`
	Tax             int64              `bson:"tax" json:"tax"`
	Shipping        int64              `bson:"shipping" json:"shipping"`
	TotalAmount     int64              `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	Status          string             `bson:"status" json:"status"`
	XenditInvoiceID string             `bson:"xenditInvoiceId,omitempty" json:"xenditInvoiceId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
