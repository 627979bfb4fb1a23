package controllers

import (
	"fmt"

	"edesign/models"
)

const (
	taxRatePercent = 10
	shippingFee    = 15000 // flat fee, Rupiah
)

type checkoutItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// buildOrderItems snapshots name and unit price from the products freshly
// read off the database. Whatever price the client sent is ignored.
func buildOrderItems(cartItems []checkoutItem, products map[string]models.Product) ([]models.OrderItem, int64, error) {
	var items []models.OrderItem
	var subtotal int64

	for _, item := range cartItems {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("product with ID %s not found", item.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		subtotal += product.Price * int64(item.Quantity)
	}

	return items, subtotal, nil
}

// computeTotals applies the 10% tax rate and the flat shipping fee.
// Amounts are integer Rupiah, so tax truncates toward zero for
// subtotals not divisible by 10.
func computeTotals(subtotal int64) (tax, shipping, total int64) {
	tax = subtotal * taxRatePercent / 100
	shipping = shippingFee
	total = subtotal + tax + shipping
	return tax, shipping, total
}
