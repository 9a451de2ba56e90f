package middleware

import (
	"strings"

	"agriconnect/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// SessionToken extracts the opaque token from the session cookie or an
// Authorization: Bearer header. Empty string when neither is present.
func SessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// RequireSession validates the session token and sets the user id in the
// request context for downstream handlers. Absent or expired sessions are
// rejected with 401.
func RequireSession(sessions session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing session token"})
		}

		userID, err := sessions.Get(c.UserContext(), token)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired session"})
		}

		c.Locals("user_id", userID)
		c.Locals("session_token", token)

		return c.Next()
	}
}
