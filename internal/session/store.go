// Package session stores opaque login tokens server-side. A token is a
// random UUID handed to the client at login; it carries no claims, the
// user id is resolved by lookup on every request.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found or expired")

type Store interface {
	// Create issues a new token bound to userID, valid for the store's TTL.
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	// Get resolves a token to its user id. Returns ErrNotFound for unknown
	// or expired tokens.
	Get(ctx context.Context, token string) (uuid.UUID, error)
	// Delete invalidates a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
