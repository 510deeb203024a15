package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func lineFor(productID primitive.ObjectID, name string, price float64, quantity int) CartItem {
	return CartItem{
		ProductID:   productID,
		ProductName: name,
		Price:       price,
		Quantity:    quantity,
		Subtotal:    price * float64(quantity),
	}
}

func TestMergeItem_AppendsNewLines(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()

	cart.MergeItem(lineFor(productA, "Keyboard", 49.99, 1))
	cart.MergeItem(lineFor(productB, "Mouse", 19.99, 2))
	cart.RecalculateTotal()

	require.Len(t, cart.CartItems, 2)
	assert.InDelta(t, 49.99+2*19.99, cart.TotalPrice, 1e-9)
}

func TestMergeItem_AccumulatesExistingLine(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()

	cart.MergeItem(lineFor(productA, "Keyboard", 10, 2))
	cart.MergeItem(lineFor(productA, "Keyboard", 10, 3))
	cart.RecalculateTotal()

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 5, cart.CartItems[0].Quantity)
	assert.InDelta(t, 50, cart.CartItems[0].Subtotal, 1e-9)
	assert.InDelta(t, 50, cart.TotalPrice, 1e-9)
}

func TestRecalculateTotal_SumsLineSubtotals(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	prices := []float64{5.25, 100, 0.99}
	quantities := []int{4, 1, 10}

	want := 0.0
	for i := range prices {
		cart.MergeItem(lineFor(primitive.NewObjectID(), "p", prices[i], quantities[i]))
		want += prices[i] * float64(quantities[i])
	}
	cart.RecalculateTotal()

	assert.InDelta(t, want, cart.TotalPrice, 1e-9)
}

func TestSetItemQuantity_RefreshesPriceAndSubtotal(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()
	cart.MergeItem(lineFor(productA, "Keyboard", 10, 2))
	cart.RecalculateTotal()

	// Catalog price has drifted since the line was added
	cart.SetItemQuantity(0, 12, 5)
	cart.RecalculateTotal()

	assert.InDelta(t, 12, cart.CartItems[0].Price, 1e-9)
	assert.Equal(t, 5, cart.CartItems[0].Quantity)
	assert.InDelta(t, 60, cart.CartItems[0].Subtotal, 1e-9)
	assert.InDelta(t, 60, cart.TotalPrice, 1e-9)
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()
	cart.MergeItem(lineFor(productA, "Keyboard", 10, 2))
	cart.MergeItem(lineFor(productB, "Mouse", 20, 1))
	cart.RecalculateTotal()

	require.True(t, cart.RemoveItem(productA))
	cart.RecalculateTotal()

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, productB, cart.CartItems[0].ProductID)
	assert.InDelta(t, 20, cart.TotalPrice, 1e-9)

	assert.False(t, cart.RemoveItem(productA), "removing a missing line reports false")
}

func TestClear(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	cart.MergeItem(lineFor(primitive.NewObjectID(), "Keyboard", 10, 2))
	cart.RecalculateTotal()
	require.False(t, cart.IsEmpty())

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.CartItems)
	assert.Zero(t, cart.TotalPrice)
}

func TestFindItem(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()
	cart.MergeItem(lineFor(productA, "Keyboard", 10, 1))

	assert.Equal(t, 0, cart.FindItem(productA))
	assert.Equal(t, -1, cart.FindItem(primitive.NewObjectID()))
}

// Scenario: add productA twice (qty 2 then qty 1 at $10), total $30;
// remove it, total $0.
func TestCartScenario_AddAccumulateRemove(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()

	cart.MergeItem(lineFor(productA, "Widget", 10, 2))
	cart.RecalculateTotal()
	assert.InDelta(t, 20, cart.TotalPrice, 1e-9)

	cart.MergeItem(lineFor(productA, "Widget", 10, 1))
	cart.RecalculateTotal()
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 3, cart.CartItems[0].Quantity)
	assert.InDelta(t, 30, cart.TotalPrice, 1e-9)

	require.True(t, cart.RemoveItem(productA))
	cart.RecalculateTotal()
	assert.Zero(t, cart.TotalPrice)
	assert.Empty(t, cart.CartItems)
}
