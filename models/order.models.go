package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Orders are created Pending; no transition logic
// lives in this service.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Order is an immutable snapshot of a cart taken at checkout
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	ProductsOrdered []CartItem         `bson:"products_ordered" json:"productsOrdered"`
	TotalPrice      float64            `bson:"total_price" json:"totalPrice"`
	OrderedOn       time.Time          `bson:"ordered_on" json:"orderedOn"`
	Status          string             `bson:"status" json:"status"`
}

// NewOrderFromCart snapshots a cart into a pending order. Lines are
// copied so later cart mutations cannot reach into the order.
func NewOrderFromCart(cart *Cart, orderedOn time.Time) *Order {
	items := make([]CartItem, len(cart.CartItems))
	copy(items, cart.CartItems)
	return &Order{
		UserID:          cart.UserID,
		ProductsOrdered: items,
		TotalPrice:      cart.TotalPrice,
		OrderedOn:       orderedOn,
		Status:          OrderStatusPending,
	}
}
