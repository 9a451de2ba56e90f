package handler

import (
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ListingHandler struct {
	catalog service.CatalogService
}

func NewListingHandler(catalog service.CatalogService) *ListingHandler {
	return &ListingHandler{catalog: catalog}
}

// listingKey parses the (userId, productId) composite key from the path.
func listingKey(c *fiber.Ctx) (userID, productID uuid.UUID, err error) {
	userID, err = parseUUID(c.Params("userId"))
	if err != nil {
		return
	}
	productID, err = parseUUID(c.Params("productId"))
	return
}

// GetListings returns every listing on the marketplace
// GET /user-products
func (h *ListingHandler) GetListings(c *fiber.Ctx) error {
	listings, err := h.catalog.GetListings()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listings)
}

// GetListing returns one seller's offer for one product
// GET /user-products/:userId/:productId
func (h *ListingHandler) GetListing(c *fiber.Ctx) error {
	userID, productID, err := listingKey(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid listing key"})
	}

	listing, err := h.catalog.GetListing(userID, productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listing)
}

// CreateListing lists a product for the session user
// POST /user-products
func (h *ListingHandler) CreateListing(c *fiber.Ctx) error {
	var req service.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	listing, err := h.catalog.CreateListing(getUserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product listed", "data": listing})
}

// UpdateListing applies a partial patch; unknown fields are rejected
// PUT /user-products/:userId/:productId
func (h *ListingHandler) UpdateListing(c *fiber.Ctx) error {
	userID, productID, err := listingKey(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid listing key"})
	}

	var patch service.ListingPatch
	if err := decodeStrict(c, &patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid or unknown fields: " + err.Error()})
	}

	listing, err := h.catalog.UpdateListing(getUserID(c), userID, productID, &patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Listing updated", "data": listing})
}

// DeleteListing removes the session user's listing
// DELETE /user-products/:userId/:productId
func (h *ListingHandler) DeleteListing(c *fiber.Ctx) error {
	userID, productID, err := listingKey(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid listing key"})
	}

	if err := h.catalog.DeleteListing(getUserID(c), userID, productID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}
