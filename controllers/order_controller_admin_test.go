package controllers

import (
	"testing"

	"edesign/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeOrdersCountsPaidRevenueOnly(t *testing.T) {
	orders := []models.Order{
		{
			Status:      models.StatusPaid,
			TotalAmount: 108500,
			Items: []models.OrderItem{
				{Name: "Shirt", Quantity: 2},
				{Name: "Bag", Quantity: 1},
			},
		},
		{
			Status:      models.StatusShipped,
			TotalAmount: 50000,
			Items: []models.OrderItem{
				{Name: "Shirt", Quantity: 1},
			},
		},
		{Status: models.StatusPending, TotalAmount: 999999},
		{Status: models.StatusFailed, TotalAmount: 777777},
	}

	summary := summarizeOrders(orders)

	assert.Equal(t, 4, summary.TotalOrders)
	assert.Equal(t, int64(158500), summary.Revenue)
	assert.Equal(t, 1, summary.OrdersByStatus[models.StatusPending])
	assert.Equal(t, 1, summary.OrdersByStatus[models.StatusPaid])
	assert.Equal(t, 1, summary.OrdersByStatus[models.StatusShipped])
	assert.Equal(t, 1, summary.OrdersByStatus[models.StatusFailed])
	assert.Equal(t, 3, summary.UnitsByProduct["Shirt"])
	assert.Equal(t, 1, summary.UnitsByProduct["Bag"])
}

func TestSummarizeOrdersEmpty(t *testing.T) {
	summary := summarizeOrders(nil)

	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.Revenue)
	assert.Empty(t, summary.OrdersByStatus)
	assert.Empty(t, summary.UnitsByProduct)
}
