package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewOrderFromCart_SnapshotsCart(t *testing.T) {
	userID := primitive.NewObjectID()
	cart := NewCart(userID)
	cart.MergeItem(lineFor(primitive.NewObjectID(), "Keyboard", 49.99, 1))
	cart.MergeItem(lineFor(primitive.NewObjectID(), "Mouse", 19.99, 3))
	cart.RecalculateTotal()

	orderedOn := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	order := NewOrderFromCart(cart, orderedOn)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, cart.CartItems, order.ProductsOrdered)
	assert.InDelta(t, cart.TotalPrice, order.TotalPrice, 1e-9)
	assert.Equal(t, orderedOn, order.OrderedOn)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestNewOrderFromCart_CopyIsIndependent(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	productA := primitive.NewObjectID()
	cart.MergeItem(lineFor(productA, "Keyboard", 10, 2))
	cart.RecalculateTotal()

	order := NewOrderFromCart(cart, time.Now())

	// Clearing the cart after checkout must not disturb the order
	cart.Clear()

	require.Len(t, order.ProductsOrdered, 1)
	assert.Equal(t, productA, order.ProductsOrdered[0].ProductID)
	assert.InDelta(t, 20, order.TotalPrice, 1e-9)
}
