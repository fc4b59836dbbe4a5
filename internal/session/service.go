package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

const defaultTTL = 12 * time.Hour

type authenticator interface {
	Login(ctx context.Context, req kairosapi.LoginRequest) (*kairosapi.LoginResponse, error)
}

type selectionDropper interface {
	Delete(ctx context.Context, sessionID string) error
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string
	Password string
}

// ServiceParams groups dependencies for the session service.
type ServiceParams struct {
	Auth       authenticator
	Store      Store
	Selections selectionDropper
	TTL        time.Duration
	IsAdmin    func(email string) bool
	Logger     *logger.Logger
	Now        func() time.Time
}

// Service manages the login, resolve and logout lifecycle.
type Service interface {
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Resolve(ctx context.Context, id string) (*Session, error)
	Logout(ctx context.Context, id string) error
}

type service struct {
	auth       authenticator
	store      Store
	selections selectionDropper
	ttl        time.Duration
	isAdmin    func(string) bool
	logg       *logger.Logger
	now        func() time.Time
}

// NewService builds a session service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Auth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authenticator is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if params.Selections == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection store is required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	isAdmin := params.IsAdmin
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		auth:       params.Auth,
		store:      params.Store,
		selections: params.Selections,
		ttl:        ttl,
		isAdmin:    isAdmin,
		logg:       params.Logger,
		now:        now,
	}, nil
}

// Login authenticates against the backend and opens a gateway session.
func (s *service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		details := map[string]any{}
		if email == "" {
			details["email"] = "is required"
		}
		if creds.Password == "" {
			details["password"] = "is required"
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required").WithDetails(details)
	}

	resp, err := s.auth.Login(ctx, kairosapi.LoginRequest{Email: email, Password: creds.Password})
	if err != nil {
		return nil, err
	}

	now := s.now()
	claims, _ := parseUpstreamClaims(resp.Token)
	expiresAt := now.Add(s.ttl)
	if !claims.Exp.IsZero() && claims.Exp.Before(expiresAt) {
		expiresAt = claims.Exp
	}
	if !expiresAt.After(now) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		ExpiresAt: expiresAt,
	}
	if account := resp.Account(); account != nil {
		sess.User = User{
			ID:    account.Identifier(),
			Name:  account.DisplayName(),
			Email: account.EmailAddress(),
		}
	}
	if sess.User.Email == "" {
		sess.User.Email = firstNonBlank(claims.Email, email)
	}
	sess.Role = s.resolveRole(resp.Account(), claims, sess.User.Email)

	if err := s.store.Save(ctx, sess, expiresAt.Sub(now)); err != nil {
		return nil, err
	}
	if s.logg != nil {
		logCtx := s.logg.WithSessionID(ctx, sess.ID)
		logCtx = s.logg.WithActorRole(logCtx, sess.Role.String())
		s.logg.Info(logCtx, "session.opened")
	}
	return sess, nil
}

// resolveRole prefers the backend's own statement of the role, then the token claim,
// then the configured admin list.
func (s *service) resolveRole(account *kairosapi.Account, claims upstreamClaims, email string) enums.UserRole {
	if account != nil {
		if role, err := enums.ParseUserRole(account.Role); err == nil {
			return role
		}
	}
	if role, err := enums.ParseUserRole(claims.Role); err == nil {
		return role
	}
	if s.isAdmin(email) {
		return enums.UserRoleAdmin
	}
	return enums.UserRoleClient
}

// Resolve loads a live session. Expired sessions are dropped.
func (s *service) Resolve(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Load(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, ErrNoSession
	}
	return sess, nil
}

// Logout closes the session and discards its working selection. Unknown ids are a no-op.
func (s *service) Logout(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.selections.Delete(ctx, id); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithSessionID(ctx, id), "session.closed")
	}
	return nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
