// Package client implements the client half of jobdeck: the API client,
// the session manager, and the user-state synchronizer that keeps a
// user's applied/bookmarked job sets consistent between the in-process
// view and the backend store.
package client

import (
	"context"
	"errors"

	"github.com/jobdeck/jobdeck/types"
)

var (
	// ErrUnavailable covers transport failures and server-side errors.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned when credentials match no identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict is returned when signing up with a taken email.
	ErrConflict = errors.New("email already registered")

	// ErrInvalid is returned when the server rejects the request shape.
	ErrInvalid = errors.New("invalid request")
)

// API defines the backend operations the client needs.
type API interface {
	// Login checks credentials and returns the matching identity.
	Login(ctx context.Context, email, password string) (types.User, error)

	// Signup registers a new identity and returns it.
	Signup(ctx context.Context, name, email, password, dob string) (types.User, error)

	// GetUserState fetches the stored record for userID, with empty
	// defaults when no record exists.
	GetUserState(ctx context.Context, userID string) (types.UserState, error)

	// PutUserState upserts the record for userID. A nil slice omits
	// that field, keeping its previously stored value.
	PutUserState(ctx context.Context, userID string, applied, bookmarked []int64) error
}
