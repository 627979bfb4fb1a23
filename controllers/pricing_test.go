package controllers

import (
	"testing"

	"edesign/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildOrderItemsUsesDatabasePrices(t *testing.T) {
	shirt := models.Product{ID: primitive.NewObjectID(), Name: "Shirt", Price: 25000}
	bag := models.Product{ID: primitive.NewObjectID(), Name: "Bag", Price: 35000}
	products := map[string]models.Product{
		shirt.ID.Hex(): shirt,
		bag.ID.Hex():   bag,
	}

	// Client-submitted prices are deliberately wrong and must be ignored.
	cart := []checkoutItem{
		{ProductID: shirt.ID.Hex(), Name: "Shirt", Price: 1, Quantity: 2},
		{ProductID: bag.ID.Hex(), Name: "Bag", Price: 99999999, Quantity: 1},
	}

	items, subtotal, err := buildOrderItems(cart, products)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(85000), subtotal)
	assert.Equal(t, int64(25000), items[0].Price)
	assert.Equal(t, int64(35000), items[1].Price)
	assert.Equal(t, "Shirt", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestComputeTotalsAppliesTaxAndFlatShipping(t *testing.T) {
	tax, shipping, total := computeTotals(85000)

	assert.Equal(t, int64(8500), tax)
	assert.Equal(t, int64(15000), shipping)
	assert.Equal(t, int64(108500), total)
}

func TestComputeTotalsTruncatesTaxTowardZero(t *testing.T) {
	tax, _, total := computeTotals(85005)

	assert.Equal(t, int64(8500), tax)
	assert.Equal(t, int64(108505), total)
}

func TestBuildOrderItemsFailsWhenProductMissing(t *testing.T) {
	shirt := models.Product{ID: primitive.NewObjectID(), Name: "Shirt", Price: 25000}
	products := map[string]models.Product{shirt.ID.Hex(): shirt}

	missingID := primitive.NewObjectID().Hex()
	cart := []checkoutItem{
		{ProductID: shirt.ID.Hex(), Quantity: 1},
		{ProductID: missingID, Quantity: 3},
	}

	items, subtotal, err := buildOrderItems(cart, products)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missingID)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, items)
	assert.Zero(t, subtotal)
}
