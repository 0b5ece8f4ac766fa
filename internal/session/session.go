// Package session owns the console's server-side sessions: an opaque cookie
// ID mapped to the upstream bearer token and the cached user profile. The
// store is the durability layer; for the lifetime of a request the resolved
// snapshot is authoritative.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/baha1115/restau-suria-frontend/internal/upstream"
)

// ErrNotFound is returned when no session exists for an ID
var ErrNotFound = errors.New("session not found")

// Session is the authenticated state carried between requests
type Session struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	User      upstream.User `json:"user"`
	LastSlug  string        `json:"last_slug,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// IsAdmin reports whether the session belongs to an admin
func (s *Session) IsAdmin() bool {
	return s.User.Role == upstream.RoleAdmin
}

// CanManageRestaurant reports whether the session may enter the owner
// subtree. Admins are allowed through, matching the owner route guard.
func (s *Session) CanManageRestaurant() bool {
	return s.User.Role == upstream.RoleOwner || s.User.Role == upstream.RoleAdmin
}

// Store persists sessions keyed by their opaque ID
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
