package client

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobdeck/jobdeck/types"
)

// sessionClaims is the identity payload carried by the session marker.
// The password never enters the marker.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	DOB   string `json:"dob"`
	Age   int    `json:"age"`
	jwt.RegisteredClaims
}

// SessionCache persists the session marker for the lifetime of a
// browsing session. The marker is a signed HS256 token in a local file;
// a marker that fails signature or expiry checks is treated the same as
// a marker that fails to parse, and discarded.
type SessionCache struct {
	path   string
	secret []byte
	ttl    time.Duration
}

func NewSessionCache(path, secret string, ttl time.Duration) *SessionCache {
	return &SessionCache{path: path, secret: []byte(secret), ttl: ttl}
}

// Save writes a marker for the given identity.
func (c *SessionCache) Save(user types.User) error {
	now := time.Now()
	claims := sessionClaims{
		Name:  user.Name,
		Email: user.Email,
		DOB:   user.DOB,
		Age:   user.Age,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("sign session marker: %w", err)
	}
	if err := os.WriteFile(c.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session marker: %w", err)
	}
	return nil
}

// Load reads and validates the marker, returning the identity it
// carries. Any failure (missing file, bad signature, expiry) yields an
// error; the caller is expected to discard the marker and start
// unauthenticated.
func (c *SessionCache) Load() (types.User, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return types.User{}, err
	}

	claims := sessionClaims{}
	token, err := jwt.ParseWithClaims(string(data), &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return types.User{}, fmt.Errorf("parse session marker: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return types.User{}, errors.New("invalid session marker")
	}

	return types.User{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		DOB:   claims.DOB,
		Age:   claims.Age,
	}, nil
}

// Clear removes the marker. A missing marker is not an error.
func (c *SessionCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
