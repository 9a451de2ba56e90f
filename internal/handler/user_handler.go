package handler

import (
	"agriconnect/internal/repository"
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userRepo repository.UserRepository
	catalog  service.CatalogService
	orders   service.OrderService
}

func NewUserHandler(userRepo repository.UserRepository, catalog service.CatalogService, orders service.OrderService) *UserHandler {
	return &UserHandler{userRepo: userRepo, catalog: catalog, orders: orders}
}

// GetUser returns a public profile
// GET /users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.userRepo.FindByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.ToResponse())
}

// GetUserProducts returns a user's listings
// GET /users/:id/products
func (h *UserHandler) GetUserProducts(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	listings, err := h.catalog.GetListingsByUser(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listings)
}

// GetUserOrders returns a user's orders as a buyer. Order history is only
// visible to the user themselves.
// GET /users/:id/orders
func (h *UserHandler) GetUserOrders(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if id != getUserID(c) {
		return c.Status(403).JSON(fiber.Map{"error": "Cannot view another user's orders"})
	}

	orders, err := h.orders.BuyerOrders(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}
