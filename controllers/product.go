package controllers

import (
	"context"
	"encoding/json"
	"go-commerce/models"
	"go-commerce/utils"
	"math"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductController handles catalog requests
type ProductController struct {
	Collection *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client) *ProductController {
	collection := client.Database(utils.DatabaseName()).Collection("products")
	return &ProductController{
		Collection: collection,
	}
}

// CreateProduct adds a new product to the catalog (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Product name is required")
		return
	}
	if input.Price < 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := pc.Collection.CountDocuments(ctx, bson.M{"name": input.Name})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondMessage(w, http.StatusConflict, "Product already exists")
		return
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		IsActive:    true,
	}

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error creating product")
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"result":  product,
	})
}

// GetAllProducts retrieves every product, archived included (Admin only)
func (pc *ProductController) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	pc.listProducts(w, bson.M{}, "No products found")
}

// GetActiveProducts retrieves the active catalog
func (pc *ProductController) GetActiveProducts(w http.ResponseWriter, r *http.Request) {
	pc.listProducts(w, bson.M{"is_active": true}, "No active products found")
}

func (pc *ProductController) listProducts(w http.ResponseWriter, filter bson.M, emptyMessage string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	if len(products) == 0 {
		utils.RespondMessage(w, http.StatusNotFound, emptyMessage)
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// UpdateProduct updates whichever fields are supplied (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{}
	if input.Name != nil {
		if *input.Name == "" {
			utils.RespondMessage(w, http.StatusBadRequest, "Product name is required")
			return
		}
		update["name"] = *input.Name
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondMessage(w, http.StatusBadRequest, "Price must not be negative")
			return
		}
		update["price"] = *input.Price
	}
	if len(update) == 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product updated successfully")
}

// ArchiveProduct soft-deletes a product (Admin only). Archiving an
// already-archived product is a no-op success.
func (pc *ProductController) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	pc.setActive(w, r, false, "Product archived successfully", "Product already archived")
}

// ActivateProduct re-activates an archived product (Admin only)
func (pc *ProductController) ActivateProduct(w http.ResponseWriter, r *http.Request) {
	pc.setActive(w, r, true, "Product activated successfully", "Product already activated")
}

func (pc *ProductController) setActive(w http.ResponseWriter, r *http.Request, active bool, okMessage, noopMessage string) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Returns the pre-update document so the no-op case can be told
	// apart from a real state change.
	var before models.Product
	err = pc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	utils.RespondMessage(w, http.StatusOK, activeStateMessage(before, active, okMessage, noopMessage))
}

// activeStateMessage picks the response for an archive/activate call
// from the pre-update document: a state change reports success, a
// repeat call reports the no-op. Both are 200s; a repeat archive is
// never an error.
func activeStateMessage(before models.Product, active bool, okMessage, noopMessage string) string {
	if before.IsActive == active {
		return noopMessage
	}
	return okMessage
}

// SearchByName finds products whose name contains the given term,
// case-insensitively
func (pc *ProductController) SearchByName(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductName string `json:"productName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{"name": bson.M{
		"$regex":   regexp.QuoteMeta(input.ProductName),
		"$options": "i",
	}}
	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// SearchByPrice finds products within an inclusive price range.
// Bounds default to [0, max].
func (pc *ProductController) SearchByPrice(w http.ResponseWriter, r *http.Request) {
	var input struct {
		MinPrice float64 `json:"minPrice"`
		MaxPrice float64 `json:"maxPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	maxPrice := input.MaxPrice
	if maxPrice == 0 {
		maxPrice = math.MaxFloat64
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{"price": bson.M{"$gte": input.MinPrice, "$lte": maxPrice}}
	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	if len(products) == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "No products found within the price range")
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}
