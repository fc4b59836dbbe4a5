// Package session holds the gateway session: the upstream bearer token and the
// account it belongs to, stored server-side and addressed by an opaque id.
package session

import (
	"strings"
	"time"

	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
)

// ErrNoSession blocks a call that needs a bearer token when none is held.
var ErrNoSession = pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the value handed to every adapter that needs the caller's identity.
type Session struct {
	ID        string         `json:"id"`
	Token     string         `json:"token"`
	User      User           `json:"user"`
	Role      enums.UserRole `json:"role"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// BearerToken implements kairosapi.TokenSource.
func (s *Session) BearerToken() (string, error) {
	if s == nil || strings.TrimSpace(s.Token) == "" {
		return "", ErrNoSession
	}
	return s.Token, nil
}

func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// CanAccessAdmin reports whether the session carries the admin role.
func CanAccessAdmin(s *Session) bool {
	return s != nil && s.Role == enums.UserRoleAdmin
}

// Public is the session as shown to the browser; the upstream token never leaves the gateway.
type Public struct {
	ID             string         `json:"id"`
	User           User           `json:"user"`
	Role           enums.UserRole `json:"role"`
	CanAccessAdmin bool           `json:"canAccessAdmin"`
	ExpiresAt      time.Time      `json:"expiresAt"`
}

func (s *Session) Public() Public {
	if s == nil {
		return Public{}
	}
	return Public{
		ID:             s.ID,
		User:           s.User,
		Role:           s.Role,
		CanAccessAdmin: CanAccessAdmin(s),
		ExpiresAt:      s.ExpiresAt,
	}
}
