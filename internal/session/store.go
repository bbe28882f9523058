// Package session persists eBay user tokens server-side. Browsers only ever
// carry an opaque session id cookie; access and refresh tokens never leave
// the backend.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Status describes the lifecycle state of a session.
type Status string

const (
	// StatusAuthenticated means the session holds a usable access token.
	StatusAuthenticated Status = "authenticated"
	// StatusExpired means the access token lapsed and refresh failed or
	// never ran. The user must re-authorize.
	StatusExpired Status = "expired"
)

// Record is a stored user session with its eBay OAuth tokens.
type Record struct {
	ID           string
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the access token has lapsed at time now.
func (r *Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Store defines all session persistence operations.
type Store interface {
	// Create inserts a new session record.
	Create(ctx context.Context, r *Record) error
	// Get retrieves a session by id, returning ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)
	// Update overwrites the token fields and status of an existing session.
	Update(ctx context.Context, r *Record) error
	// Delete removes a session by id. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions whose tokens lapsed before cutoff,
	// returning the number removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
	// ListExpiring returns authenticated sessions whose access token expires
	// before deadline and that still hold a refresh token.
	ListExpiring(ctx context.Context, deadline time.Time) ([]Record, error)
	// Count returns the number of authenticated sessions.
	Count(ctx context.Context) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error

	Close()
}
