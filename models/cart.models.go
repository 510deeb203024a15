package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a cart: a denormalized copy of the product
// taken at the time it was added. The stored price is not refreshed on
// later adds; only an explicit quantity update re-reads the catalog.
type CartItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"productId"`
	ProductName string             `bson:"product_name" json:"productName"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Subtotal    float64            `bson:"subtotal" json:"subtotal"`
}

// Cart represents a user's shopping cart. One cart per user, created
// lazily on the first add and cleared (not deleted) on checkout.
//
// Invariant: TotalPrice equals the sum of line subtotals, and every
// line's subtotal equals price * quantity. Every mutation ends with
// RecalculateTotal; totals are never patched incrementally.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	CartItems  []CartItem         `bson:"cart_items" json:"cartItems"`
	TotalPrice float64            `bson:"total_price" json:"totalPrice"`
}

// NewCart creates an empty cart for the user
func NewCart(userID primitive.ObjectID) *Cart {
	return &Cart{
		UserID:    userID,
		CartItems: []CartItem{},
	}
}

// FindItem returns the index of the line holding productID, or -1
func (c *Cart) FindItem(productID primitive.ObjectID) int {
	for i, item := range c.CartItems {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// MergeItem folds a resolved line into the cart. A line for the same
// product accumulates quantity and subtotal; otherwise the line is
// appended.
func (c *Cart) MergeItem(item CartItem) {
	if i := c.FindItem(item.ProductID); i >= 0 {
		c.CartItems[i].Quantity += item.Quantity
		c.CartItems[i].Subtotal += item.Subtotal
		return
	}
	c.CartItems = append(c.CartItems, item)
}

// SetItemQuantity overwrites quantity and subtotal of the line at
// index i using the given unit price.
func (c *Cart) SetItemQuantity(i int, price float64, quantity int) {
	c.CartItems[i].Price = price
	c.CartItems[i].Quantity = quantity
	c.CartItems[i].Subtotal = price * float64(quantity)
}

// RemoveItem deletes the line holding productID and reports whether a
// line was removed.
func (c *Cart) RemoveItem(productID primitive.ObjectID) bool {
	i := c.FindItem(productID)
	if i < 0 {
		return false
	}
	c.CartItems = append(c.CartItems[:i], c.CartItems[i+1:]...)
	return true
}

// RecalculateTotal restores the total-from-lines invariant
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.CartItems {
		total += item.Subtotal
	}
	c.TotalPrice = total
}

// Clear empties the cart and zeroes the total
func (c *Cart) Clear() {
	c.CartItems = []CartItem{}
	c.TotalPrice = 0
}

// IsEmpty reports whether the cart holds no lines
func (c *Cart) IsEmpty() bool {
	return len(c.CartItems) == 0
}
