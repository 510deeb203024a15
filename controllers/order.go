package controllers

import (
	"context"
	"go-commerce/middleware"
	"go-commerce/models"
	"go-commerce/utils"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderController handles checkout and order listings
type OrderController struct {
	OrderCollection   *mongo.Collection
	CartCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	EmailService      *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName())
	return &OrderController{
		OrderCollection:   db.Collection("orders"),
		CartCollection:    db.Collection("carts"),
		ProductCollection: db.Collection("products"),
		EmailService:      emailService,
	}
}

// Checkout snapshots the caller's cart into a pending order and then
// empties the cart. The two writes are not atomic: a failure after the
// order insert leaves the cart uncleared. Accepted gap — standalone
// Mongo deployments cannot run multi-document transactions.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	if err := oc.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "No cart found for user or cart is empty")
		return
	}
	if cart.IsEmpty() {
		utils.RespondMessage(w, http.StatusNotFound, "No cart found for user or cart is empty")
		return
	}

	order := models.NewOrderFromCart(&cart, time.Now())
	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	cart.Clear()
	_, err = oc.CartCollection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{
		"$set": bson.M{
			"cart_items":  cart.CartItems,
			"total_price": cart.TotalPrice,
		},
	})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	go func(email string, order models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", email, err)
		}
	}(claims.Email, *order)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders lists the caller's own orders
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	if len(orders) == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "No orders found for this user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// productSummary is the slice of catalog data joined onto admin order
// listings
type productSummary struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type adminOrderLine struct {
	models.CartItem
	Product *productSummary `json:"product,omitempty"`
}

type adminOrderView struct {
	models.Order
	ProductsOrdered []adminOrderLine `json:"productsOrdered"`
}

// GetAllOrders lists every order with current product details joined
// onto each line (Admin only)
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if len(orders) == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "No orders found")
		return
	}

	products, err := oc.lookupProducts(ctx, orders)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching product details")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders": buildOrderViews(orders, products),
	})
}

// buildOrderViews joins current catalog data onto each order line.
// Lines whose product has since vanished keep their snapshot with no
// product attached.
func buildOrderViews(orders []models.Order, products map[primitive.ObjectID]models.Product) []adminOrderView {
	views := make([]adminOrderView, 0, len(orders))
	for _, order := range orders {
		view := adminOrderView{
			Order:           order,
			ProductsOrdered: make([]adminOrderLine, 0, len(order.ProductsOrdered)),
		}
		for _, line := range order.ProductsOrdered {
			detail := adminOrderLine{CartItem: line}
			if product, ok := products[line.ProductID]; ok {
				detail.Product = &productSummary{Name: product.Name, Price: product.Price}
			}
			view.ProductsOrdered = append(view.ProductsOrdered, detail)
		}
		views = append(views, view)
	}
	return views
}

// lookupProducts fetches every product referenced by the given orders
// in one query
func (oc *OrderController) lookupProducts(ctx context.Context, orders []models.Order) (map[primitive.ObjectID]models.Product, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := []primitive.ObjectID{}
	for _, order := range orders {
		for _, line := range order.ProductsOrdered {
			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				ids = append(ids, line.ProductID)
			}
		}
	}

	cursor, err := oc.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}
