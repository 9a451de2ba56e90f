package handler

import (
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrder validates stock and creates the order atomically
// POST /orders-with-items
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req service.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.orders.PlaceOrder(getUserID(c), &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Order placed",
		"order_id": order.ID,
		"data":     order,
	})
}

// GetOrders returns the session user's orders as a buyer
// GET /orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.BuyerOrders(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

// GetOrder returns one order, visible to its buyer and its sellers
// GET /orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.GetOrder(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// FarmerOrders returns orders containing at least one line from the session
// user's listings
// GET /farmer-orders
func (h *OrderHandler) FarmerOrders(c *fiber.Ctx) error {
	orders, err := h.orders.FarmerOrders(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

// AcceptOrder transitions pending -> accepted
// PUT /farmer-orders/:id/accept
func (h *OrderHandler) AcceptOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.AcceptOrder(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order accepted", "data": order})
}

// RejectOrder transitions pending -> rejected and restocks the seller's lines
// PUT /farmer-orders/:id/reject
func (h *OrderHandler) RejectOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.RejectOrder(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order rejected", "data": order})
}

// PayOrder transitions accepted -> paid for the order's buyer
// PUT /orders/:id/pay
func (h *OrderHandler) PayOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.PayOrder(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order paid", "data": order})
}
