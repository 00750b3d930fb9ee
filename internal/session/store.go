// Package session holds the portal's server-side session state: the
// backend token issued at login and one-shot flash notifications.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoSession is returned when no token is stored for a session ID.
var ErrNoSession = errors.New("no session")

// Flash levels
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Flash is a one-shot notification displayed on the next page render.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Store defines the interface for session state access.
type Store interface {
	// Token returns the backend token for a session, or ErrNoSession.
	Token(ctx context.Context, sessionID string) (string, error)

	// SetToken stores the backend token for a session.
	SetToken(ctx context.Context, sessionID, token string) error

	// Clear removes all state for a session.
	Clear(ctx context.Context, sessionID string) error

	// SetFlash stores the pending notification for a session.
	SetFlash(ctx context.Context, sessionID string, flash Flash) error

	// PopFlash returns and removes the pending notification, or nil
	// when there is none.
	PopFlash(ctx context.Context, sessionID string) (*Flash, error)

	// Ping checks if the store is healthy.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}

// NewID mints a new opaque session identifier.
func NewID() string {
	return uuid.NewString()
}
