package middleware

import (
	"context"

	"github.com/mt-arl/kairosMIxFront/internal/session"
)

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the session resolved for the request, or nil.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return v
	}
	return nil
}

// WithSession injects the resolved session into the context.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

func RoleFromContext(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.Role.String()
	}
	return ""
}
