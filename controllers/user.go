package controllers

import (
	"context"
	"encoding/json"
	"go-commerce/middleware"
	"go-commerce/models"
	"go-commerce/utils"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserController handles user-related requests
type UserController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client, emailService *utils.EmailService) *UserController {
	collection := client.Database(utils.DatabaseName()).Collection("users")
	return &UserController{
		Collection:   collection,
		EmailService: emailService,
	}
}

// CheckEmail reports whether an email is already registered
func (uc *UserController) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := utils.ValidateEmail(input.Email); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}

	if count > 0 {
		utils.RespondMessage(w, http.StatusConflict, "Duplicate email found")
		return
	}
	utils.RespondMessage(w, http.StatusNotFound, "No duplicate email found")
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		MobileNo  string `json:"mobileNo"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := utils.ValidateEmail(input.Email); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateMobileNo(input.MobileNo); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	// Check if user already exists
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondMessage(w, http.StatusConflict, "Duplicate email found")
		return
	}

	// Hash the password
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		MobileNo:  input.MobileNo,
		Password:  hashedPassword,
		Role:      models.RoleUser,
	}

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error creating user")
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Sanitize()

	go func(email, firstName string) {
		if err := uc.EmailService.SendWelcomeEmail(email, firstName); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}(user.Email, user.FirstName)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := utils.ValidateEmail(creds.Email); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	// Find the user in the database
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "No email found")
		return
	}

	// Compare the hashed password
	if err := utils.CheckPassword(user.Password, creds.Password); err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.IsAdmin())
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "User logged in successfully",
		"access":  token,
	})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	user.Sanitize()
	utils.RespondJSON(w, http.StatusOK, user)
}

// UpdatePassword changes the authenticated user's password
func (uc *UserController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.ValidatePassword(input.NewPassword); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"password": hashedPassword},
	})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating password")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Password reset successfully")
}

// UpdateProfile updates the authenticated user's profile fields
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		MobileNo  string `json:"mobileNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.MobileNo != "" {
		if err := utils.ValidateMobileNo(input.MobileNo); err != nil {
			utils.RespondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	update := bson.M{}
	if input.FirstName != "" {
		update["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		update["last_name"] = input.LastName
	}
	if input.MobileNo != "" {
		update["mobile_no"] = input.MobileNo
	}
	if len(update) == 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err = uc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	user.Sanitize()
	utils.RespondJSON(w, http.StatusOK, user)
}

// SetAsAdmin promotes an arbitrary user to the admin role (Admin only)
func (uc *UserController) SetAsAdmin(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"role": models.RoleAdmin},
	})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to set user as admin")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "User with ID "+params["id"]+" has been set as admin")
}
