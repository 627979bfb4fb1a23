package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"edesign/database"
	"edesign/models"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetOrdersAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	var orders []models.Order = []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": orders})
}

func GetOrderByIDAdmin(c *gin.Context) {
	orderID := c.Param("id")
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

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": order})
}

type analyticsSummary struct {
	TotalOrders    int            `json:"totalOrders"`
	Revenue        int64          `json:"revenue"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
	UnitsByProduct map[string]int `json:"unitsByProduct"`
}

// summarizeOrders aggregates the numbers the admin dashboard charts.
// Revenue and units only count orders whose payment was captured.
func summarizeOrders(orders []models.Order) analyticsSummary {
	summary := analyticsSummary{
		OrdersByStatus: map[string]int{},
		UnitsByProduct: map[string]int{},
	}

	for _, order := range orders {
		summary.TotalOrders++
		summary.OrdersByStatus[order.Status]++

		if order.Status == models.StatusPaid || order.Status == models.StatusShipped {
			summary.Revenue += order.TotalAmount
			for _, item := range order.Items {
				summary.UnitsByProduct[item.Name] += item.Quantity
			}
		}
	}

	return summary
}

func GetAnalyticsSummary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": summarizeOrders(orders)})
}

// ExportOrdersExcel streams all transactions as an .xlsx download.
func ExportOrdersExcel(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
		return
	}

	headers := []string{
		"ID", "Customer", "Items", "Subtotal", "Tax", "Shipping",
		"Total", "Status", "ShippingAddress", "InvoiceID", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetValue(o.ID.Hex())
		row.AddCell().SetValue(o.CustomerName)

		var lines []string
		for _, item := range o.Items {
			lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		}
		row.AddCell().SetValue(strings.Join(lines, ", "))

		row.AddCell().SetValue(o.Subtotal)
		row.AddCell().SetValue(o.Tax)
		row.AddCell().SetValue(o.Shipping)
		row.AddCell().SetValue(o.TotalAmount)
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(o.ShippingAddress)
		row.AddCell().SetValue(o.XenditInvoiceID)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
