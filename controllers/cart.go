package controllers

import (
	"context"
	"encoding/json"
	"go-commerce/middleware"
	"go-commerce/models"
	"go-commerce/utils"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartController handles cart requests. Cart routes sit behind the
// customer-only middleware, so every caller here is a non-admin user.
type CartController struct {
	CartCollection    *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client) *CartController {
	db := client.Database(utils.DatabaseName())
	return &CartController{
		CartCollection:    db.Collection("carts"),
		ProductCollection: db.Collection("products"),
	}
}

func (cc *CartController) callerID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

// AddToCart adds a batch of (productId, quantity) pairs to the
// caller's cart, creating the cart on first use. Unknown product ids
// are silently dropped; a line that already exists accumulates
// quantity and subtotal. The stored line price is the catalog price at
// add time and is not refreshed here.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.callerID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	var input struct {
		CartItems []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"cartItems"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(input.CartItems) == 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "No products provided")
		return
	}

	// Requested quantity per product. Malformed ids are rejected
	// outright; only well-formed ids missing from the catalog are
	// silently dropped later.
	quantities := make(map[primitive.ObjectID]int)
	productIDs := []primitive.ObjectID{}
	for _, item := range input.CartItems {
		if item.Quantity <= 0 {
			utils.RespondMessage(w, http.StatusBadRequest, "Quantity must be positive")
			return
		}
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
			return
		}
		if _, seen := quantities[id]; !seen {
			productIDs = append(productIDs, id)
		}
		quantities[id] += item.Quantity
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := cc.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading products")
		return
	}
	if len(products) == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "No products found")
		return
	}

	// Find or lazily create the cart
	var cart models.Cart
	created := false
	err = cc.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching cart")
			return
		}
		cart = *models.NewCart(userID)
		created = true
	}

	for _, product := range products {
		quantity := quantities[product.ID]
		cart.MergeItem(models.CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    quantity,
			Subtotal:    product.Price * float64(quantity),
		})
	}
	cart.RecalculateTotal()

	if created {
		result, err := cc.CartCollection.InsertOne(ctx, cart)
		if err != nil {
			utils.RespondMessage(w, http.StatusInternalServerError, "Error creating cart")
			return
		}
		cart.ID = result.InsertedID.(primitive.ObjectID)
	} else {
		if err := cc.saveCart(ctx, &cart); err != nil {
			utils.RespondMessage(w, http.StatusInternalServerError, "Error updating cart")
			return
		}
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Items added to cart successfully",
		"cart":    cart,
	})
}

// GetCart retrieves the caller's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.callerID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Cart is empty")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// UpdateQuantity overwrites the quantity of one cart line. Unlike
// AddToCart, this path re-reads the catalog price before computing the
// new subtotal.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.callerID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	var input struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Quantity <= 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Valid item ID and positive quantity are required")
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ItemID)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Valid item ID and positive quantity are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Cart not found")
		return
	}

	i := cart.FindItem(productID)
	if i < 0 {
		utils.RespondMessage(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	var product models.Product
	if err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	cart.SetItemQuantity(i, product.Price, input.Quantity)
	cart.RecalculateTotal()

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item quantity updated successfully",
		"cart":    cart,
	})
}

// RemoveFromCart deletes one line from the caller's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.callerID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Cart not found")
		return
	}

	if !cart.RemoveItem(productID) {
		utils.RespondMessage(w, http.StatusNotFound, "Item not found in cart")
		return
	}
	cart.RecalculateTotal()

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item removed from cart successfully",
		"cart":    cart,
	})
}

// ClearCart resets the caller's cart to empty
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.callerID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Cart not found")
		return
	}

	cart.Clear()
	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart cleared successfully",
		"cart":    cart,
	})
}

func (cc *CartController) saveCart(ctx context.Context, cart *models.Cart) error {
	_, err := cc.CartCollection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{
		"$set": bson.M{
			"cart_items":  cart.CartItems,
			"total_price": cart.TotalPrice,
		},
	})
	return err
}
