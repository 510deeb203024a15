package routes

import (
	"go-commerce/controllers"
	"go-commerce/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController) {
	// Public user routes
	router.HandleFunc("/users/check-email", userController.CheckEmail).Methods("POST")
	router.HandleFunc("/users/register", userController.Register).Methods("POST")
	router.HandleFunc("/users/login", userController.Login).Methods("POST")

	// Authenticated user routes
	users := router.PathPrefix("/users").Subrouter()
	users.Use(middleware.AuthMiddleware)
	users.HandleFunc("/details", userController.GetProfile).Methods("GET")
	users.HandleFunc("/update-password", userController.UpdatePassword).Methods("PUT")
	users.HandleFunc("/profile", userController.UpdateProfile).Methods("PUT")

	usersAdmin := router.PathPrefix("/users").Subrouter()
	usersAdmin.Use(middleware.AuthMiddleware, middleware.AdminMiddleware)
	usersAdmin.HandleFunc("/{id}/set-as-admin", userController.SetAsAdmin).Methods("PATCH")

	// Public catalog routes
	router.HandleFunc("/products", productController.GetActiveProducts).Methods("GET")
	router.HandleFunc("/products/specific/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/products/search", productController.SearchByName).Methods("POST")
	router.HandleFunc("/products/search-by-price", productController.SearchByPrice).Methods("POST")

	// Admin catalog routes
	productsAdmin := router.PathPrefix("/products").Subrouter()
	productsAdmin.Use(middleware.AuthMiddleware, middleware.AdminMiddleware)
	productsAdmin.HandleFunc("", productController.CreateProduct).Methods("POST")
	productsAdmin.HandleFunc("/all", productController.GetAllProducts).Methods("GET")
	productsAdmin.HandleFunc("/{productId}", productController.UpdateProduct).Methods("PATCH")
	productsAdmin.HandleFunc("/{productId}/archive", productController.ArchiveProduct).Methods("PATCH")
	productsAdmin.HandleFunc("/{productId}/activate", productController.ActivateProduct).Methods("PATCH")

	// Cart routes: authenticated customers only, admins are forbidden
	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.AuthMiddleware, middleware.CustomerMiddleware)
	cart.HandleFunc("", cartController.AddToCart).Methods("POST")
	cart.HandleFunc("", cartController.GetCart).Methods("GET")
	cart.HandleFunc("", cartController.ClearCart).Methods("DELETE")
	cart.HandleFunc("/quantity", cartController.UpdateQuantity).Methods("PATCH")
	cart.HandleFunc("/{productId}", cartController.RemoveFromCart).Methods("DELETE")

	// Order routes
	checkout := router.PathPrefix("/orders").Subrouter()
	checkout.Use(middleware.AuthMiddleware, middleware.CustomerMiddleware)
	checkout.HandleFunc("/checkout", orderController.Checkout).Methods("POST")

	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.AuthMiddleware)
	orders.HandleFunc("/my-orders", orderController.GetMyOrders).Methods("GET")

	ordersAdmin := router.PathPrefix("/orders").Subrouter()
	ordersAdmin.Use(middleware.AuthMiddleware, middleware.AdminMiddleware)
	ordersAdmin.HandleFunc("/all", orderController.GetAllOrders).Methods("GET")
}
