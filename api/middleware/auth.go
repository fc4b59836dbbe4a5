package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mt-arl/kairosMIxFront/api/responses"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

// SessionResolver looks up a gateway session by id.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// BearerSessionID extracts the gateway session id from the Authorization header.
func BearerSessionID(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// Auth resolves the bearer session id and seeds the request context with the session.
func Auth(resolver SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := BearerSessionID(r)
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			sess, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(attachSession(r.Context(), sess, logg)))
		})
	}
}

// OptionalAuth attaches the session when the request carries a live one and lets
// anonymous requests through untouched.
func OptionalAuth(resolver SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := BearerSessionID(r)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := resolver.Resolve(r.Context(), sessionID)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(attachSession(r.Context(), sess, logg)))
			case errors.Is(err, session.ErrNoSession) || pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized):
				next.ServeHTTP(w, r)
			default:
				responses.WriteError(r.Context(), logg, w, err)
			}
		})
	}
}

func attachSession(ctx context.Context, sess *session.Session, logg *logger.Logger) context.Context {
	ctx = WithSession(ctx, sess)
	if logg != nil {
		ctx = logg.WithSessionID(ctx, sess.ID)
		ctx = logg.WithActorRole(ctx, sess.Role.String())
	}
	return ctx
}
