package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mt-arl/kairosMIxFront/api/middleware"
	"github.com/mt-arl/kairosMIxFront/api/responses"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

func requireSession(r *http.Request) (*session.Session, error) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return nil, session.ErrNoSession
	}
	return sess, nil
}

func unavailable(name string) error {
	return pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable")
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// SessionCurrent returns the signed-in user and role; the upstream token stays server-side.
func SessionCurrent(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requireSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.Public())
	}
}
