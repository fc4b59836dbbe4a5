package controllers

import (
	"net/http"

	"github.com/mt-arl/kairosMIxFront/api/middleware"
	"github.com/mt-arl/kairosMIxFront/api/responses"
	"github.com/mt-arl/kairosMIxFront/api/validators"
	"github.com/mt-arl/kairosMIxFront/internal/clients"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin opens a gateway session. The returned id is the bearer for every later call.
func AuthLogin(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("session"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := svc.Login(r.Context(), session.Credentials{Email: body.Email, Password: body.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sess.Public())
	}
}

// AuthRegister creates a customer account. It does not sign the customer in.
func AuthRegister(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("clients"))
			return
		}

		var form clients.RegistrationForm
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.Register(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, client)
	}
}

// AuthLogout closes the presented session. Unknown or missing ids still succeed.
func AuthLogout(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("session"))
			return
		}

		if err := svc.Logout(r.Context(), middleware.BearerSessionID(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
