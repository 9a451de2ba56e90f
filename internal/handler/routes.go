package handler

import (
	"agriconnect/internal/middleware"
	"agriconnect/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API surface. Reads on the catalog are public;
// everything touching accounts, listings, or orders requires a session.
func RegisterRoutes(
	app *fiber.App,
	sessions session.Store,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	productHandler *ProductHandler,
	listingHandler *ListingHandler,
	orderHandler *OrderHandler,
) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Auth lifecycle
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	requireSession := middleware.RequireSession(sessions)
	app.Get("/me", requireSession, authHandler.Me)

	// Catalog
	app.Get("/products", productHandler.GetProducts)
	app.Get("/products/:id", productHandler.GetProduct)
	app.Post("/products", requireSession, productHandler.CreateProduct)
	app.Put("/products/:id", requireSession, productHandler.UpdateProduct)
	app.Delete("/products/:id", requireSession, productHandler.DeleteProduct)

	// Listings
	app.Get("/user-products", listingHandler.GetListings)
	app.Get("/user-products/:userId/:productId", listingHandler.GetListing)
	app.Post("/user-products", requireSession, listingHandler.CreateListing)
	app.Put("/user-products/:userId/:productId", requireSession, listingHandler.UpdateListing)
	app.Delete("/user-products/:userId/:productId", requireSession, listingHandler.DeleteListing)

	// Public user profiles
	app.Get("/users/:id", userHandler.GetUser)
	app.Get("/users/:id/products", userHandler.GetUserProducts)
	app.Get("/users/:id/orders", requireSession, userHandler.GetUserOrders)

	// Order workflow
	app.Post("/orders-with-items", requireSession, orderHandler.PlaceOrder)
	app.Get("/orders", requireSession, orderHandler.GetOrders)
	app.Get("/orders/:id", requireSession, orderHandler.GetOrder)
	app.Put("/orders/:id/pay", requireSession, orderHandler.PayOrder)
	app.Get("/farmer-orders", requireSession, orderHandler.FarmerOrders)
	app.Put("/farmer-orders/:id/accept", requireSession, orderHandler.AcceptOrder)
	app.Put("/farmer-orders/:id/reject", requireSession, orderHandler.RejectOrder)
}
