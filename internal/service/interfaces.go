// Package service defines the contracts for the tool's external
// collaborators. The allocation core depends only on these interfaces so it
// stays testable with in-memory fakes.
package service

import (
	"context"
	"time"
)

// Session identifies a signed-in user.
type Session struct {
	UserID string
	Email  string
}

// Identity is the opaque identity provider. Any call may fail with an
// authentication error carrying a human-readable message; callers surface
// it verbatim and take no recovery action.
type Identity interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*Session, error)
	// Subscribe registers a session-change callback (nil session on sign
	// out) and returns an unsubscribe func.
	Subscribe(fn func(*Session)) func()
}

// DocumentStore persists one opaque JSON document per user. Get returns
// common.ErrNotFound for a user with no document yet.
type DocumentStore interface {
	Get(ctx context.Context, userID string) ([]byte, error)
	Upsert(ctx context.Context, userID string, doc []byte, at time.Time) error
}

// Clock abstracts time for the session layer.
type Clock interface {
	Now() time.Time
}
