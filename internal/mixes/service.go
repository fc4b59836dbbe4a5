package mixes

import (
	"context"
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

type mixAPI interface {
	CreateMix(ctx context.Context, tokens kairosapi.TokenSource, req kairosapi.CreateMixRequest) (*kairosapi.Mix, error)
	ListMixes(ctx context.Context, tokens kairosapi.TokenSource) ([]kairosapi.Mix, error)
	ListAllMixes(ctx context.Context) ([]kairosapi.Mix, error)
}

type guard interface {
	Acquire(ctx context.Context, scope, action string) (func(), error)
}

// ServiceParams groups dependencies for the mix service.
type ServiceParams struct {
	API       mixAPI
	Selection selection.Service
	Guard     guard
	Logger    *logger.Logger
}

// Service saves, lists and reuses mixes on behalf of a session.
type Service interface {
	Save(ctx context.Context, sess *session.Session, name string) (MixView, error)
	List(ctx context.Context, sess *session.Session) ([]MixView, error)
	Use(ctx context.Context, sess *session.Session, mixID string) (selection.View, error)
	OrderDraft(ctx context.Context, sess *session.Session, mixID string) (OrderDraft, error)
	ListAll(ctx context.Context, query string) ([]MixView, error)
}

type service struct {
	api       mixAPI
	selection selection.Service
	guard     guard
	logg      *logger.Logger
}

// NewService builds a mix service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mix api is required")
	}
	if params.Selection == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection service is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inflight guard is required")
	}
	return &service{
		api:       params.API,
		selection: params.Selection,
		guard:     params.Guard,
		logg:      params.Logger,
	}, nil
}

// Save persists the session's working selection under name and, once the backend
// confirms, removes the saved lines from the selection.
func (s *service) Save(ctx context.Context, sess *session.Session, name string) (MixView, error) {
	if _, err := sess.BearerToken(); err != nil {
		return MixView{}, err
	}

	set, err := s.selection.Current(ctx, sess.ID)
	if err != nil {
		return MixView{}, err
	}
	payload, err := ToSavePayload(name, set)
	if err != nil {
		return MixView{}, err
	}
	submitted := set.Items()

	release, err := s.guard.Acquire(ctx, sess.ID, inflight.ActionSaveMix)
	if err != nil {
		return MixView{}, err
	}
	defer release()
	ctx = s.logg.WithAction(ctx, inflight.ActionSaveMix)

	saved, err := s.api.CreateMix(ctx, sess, payload)
	if err != nil {
		return MixView{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"mix_id": saved.ID, "ingredients": len(payload.Ingredients)}), "mix.saved")
	}

	if err := s.selection.RemoveSubmitted(ctx, sess.ID, submitted); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"session_id": sess.ID, "error": err.Error()}), "mix.saved_selection_not_cleared")
	}

	view := NewMixView(*saved)
	if view.Name == "" {
		view.Name = payload.Name
	}
	return view, nil
}

func (s *service) List(ctx context.Context, sess *session.Session) ([]MixView, error) {
	mixes, err := s.api.ListMixes(ctx, sess)
	if err != nil {
		return nil, err
	}
	return NewMixViews(mixes), nil
}

// Use replaces the working selection with the contents of a saved mix.
func (s *service) Use(ctx context.Context, sess *session.Session, mixID string) (selection.View, error) {
	mix, err := s.find(ctx, sess, mixID)
	if err != nil {
		return selection.View{}, err
	}
	return s.selection.Replace(ctx, sess.ID, FromSavedMix(*mix))
}

func (s *service) OrderDraft(ctx context.Context, sess *session.Session, mixID string) (OrderDraft, error) {
	mix, err := s.find(ctx, sess, mixID)
	if err != nil {
		return OrderDraft{}, err
	}
	return NewOrderDraft(*mix), nil
}

// ListAll returns every saved mix, filtered by name or owner.
func (s *service) ListAll(ctx context.Context, query string) ([]MixView, error) {
	mixes, err := s.api.ListAllMixes(ctx)
	if err != nil {
		return nil, err
	}
	return FilterViews(NewMixViews(mixes), query), nil
}

// find looks a mix up among the session's own mixes; the backend has no single-mix endpoint.
func (s *service) find(ctx context.Context, sess *session.Session, mixID string) (*kairosapi.Mix, error) {
	mixID = strings.TrimSpace(mixID)
	if mixID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mix id is required")
	}
	mixes, err := s.api.ListMixes(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range mixes {
		if mixes[i].ID == mixID {
			return &mixes[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "mix not found")
}
