// Package session holds server-side sessions keyed by an opaque session
// ID handed to the client in a cookie. The session carries the
// authenticated user's identifier and role; nothing else.
package session

import (
	"context"
	"errors"
	"time"

	"foodshare-be/internal/entities"
)

// ErrNotFound is returned when a session ID does not resolve.
var ErrNotFound = errors.New("session not found")

// Session is the state recorded for a logged-in user.
type Session struct {
	UserID string        `json:"user_id"`
	Role   entities.Role `json:"role"`
}

// Store is the session persistence interface.
type Store interface {
	Create(ctx context.Context, sess Session, ttl time.Duration) (string, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
