package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// upstreamClaims are read from the backend token without verifying its signature.
// They only size and label the gateway session; the backend verifies the token itself.
type upstreamClaims struct {
	Role  string    `json:"role,omitempty"`
	Email string    `json:"email,omitempty"`
	Exp   time.Time `json:"-"`
}

func parseUpstreamClaims(token string) (upstreamClaims, bool) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return upstreamClaims{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return upstreamClaims{}, false
	}

	var out upstreamClaims
	if role, ok := claims["role"].(string); ok {
		out.Role = strings.TrimSpace(role)
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = strings.TrimSpace(email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Exp = exp.Time
	}
	return out, true
}
