package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"agriconnect/internal/middleware"
	"agriconnect/internal/service"
	"agriconnect/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// getUserID reads the authenticated user id set by the session middleware.
func getUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("user_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// sessionToken prefers the token resolved by the middleware, falling back to
// extracting it from the request for routes outside RequireSession.
func sessionToken(c *fiber.Ctx) string {
	if t, ok := c.Locals("session_token").(string); ok && t != "" {
		return t
	}
	return middleware.SessionToken(c)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// decodeStrict unmarshals a JSON body rejecting unknown fields. Used for the
// partial-update endpoints so client-supplied keys outside the allow list
// fail instead of being silently dropped.
func decodeStrict(c *fiber.Ctx, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// fail maps service errors onto the HTTP taxonomy. Unrecognized errors are
// storage failures: already rolled back, reported without detail.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrUserTypeNotFound):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, session.ErrNotFound):
		return c.Status(401).JSON(fiber.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrNotOrderSeller),
		errors.Is(err, service.ErrNotOrderBuyer),
		errors.Is(err, service.ErrNotListingUser):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, service.ErrListingNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrListingExists),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrOrderNotPayable),
		errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(statusForConflict(err)).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "internal server error"})
	}
}

func statusForConflict(err error) int {
	if errors.Is(err, service.ErrInvalidCredentials) {
		return 401
	}
	return 409
}
