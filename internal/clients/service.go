package clients

import (
	"context"

	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

type clientAPI interface {
	RegisterClient(ctx context.Context, input kairosapi.ClientInput) (*kairosapi.Customer, error)
	ListClients(ctx context.Context) ([]kairosapi.Customer, error)
	GetClient(ctx context.Context, id string) (*kairosapi.Customer, error)
	CreateClient(ctx context.Context, input kairosapi.ClientInput) (*kairosapi.Customer, error)
	UpdateClient(ctx context.Context, id string, input kairosapi.ClientInput) (*kairosapi.Customer, error)
	DeactivateClient(ctx context.Context, id string) (*kairosapi.Customer, error)
}

type guard interface {
	Acquire(ctx context.Context, scope, action string) (func(), error)
}

// ServiceParams groups dependencies for the client service.
type ServiceParams struct {
	API    clientAPI
	Guard  guard
	Logger *logger.Logger
}

// Service registers customers and exposes the admin client operations.
type Service interface {
	Register(ctx context.Context, form RegistrationForm) (ClientView, error)
	List(ctx context.Context, query string) ([]ClientView, error)
	Get(ctx context.Context, id string) (ClientView, error)
	Create(ctx context.Context, sess *session.Session, form ClientForm) (ClientView, error)
	Update(ctx context.Context, sess *session.Session, id string, form ClientForm) (ClientView, error)
	Deactivate(ctx context.Context, sess *session.Session, id string) (ClientView, error)
}

type service struct {
	api   clientAPI
	guard guard
	logg  *logger.Logger
}

// NewService builds a client service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client api is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inflight guard is required")
	}
	return &service{api: params.API, guard: params.Guard, logg: params.Logger}, nil
}

func (s *service) Register(ctx context.Context, form RegistrationForm) (ClientView, error) {
	if err := form.Validate(); err != nil {
		return ClientView{}, err
	}
	client, err := s.api.RegisterClient(ctx, form.ToInput())
	if err != nil {
		return ClientView{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "client_id", client.ID), "client.registered")
	}
	return NewClientView(*client), nil
}

func (s *service) List(ctx context.Context, query string) ([]ClientView, error) {
	clients, err := s.api.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	return Search(NewClientViews(clients), query), nil
}

func (s *service) Get(ctx context.Context, id string) (ClientView, error) {
	client, err := s.api.GetClient(ctx, id)
	if err != nil {
		return ClientView{}, err
	}
	return NewClientView(*client), nil
}

func (s *service) Create(ctx context.Context, sess *session.Session, form ClientForm) (ClientView, error) {
	if err := requireAdmin(sess); err != nil {
		return ClientView{}, err
	}
	if err := form.ValidateCreate(); err != nil {
		return ClientView{}, err
	}
	return s.write(ctx, sess, "", func() (*kairosapi.Customer, error) {
		return s.api.CreateClient(ctx, form.ToInput())
	})
}

func (s *service) Update(ctx context.Context, sess *session.Session, id string, form ClientForm) (ClientView, error) {
	if err := requireAdmin(sess); err != nil {
		return ClientView{}, err
	}
	if err := form.ValidateUpdate(); err != nil {
		return ClientView{}, err
	}
	return s.write(ctx, sess, id, func() (*kairosapi.Customer, error) {
		return s.api.UpdateClient(ctx, id, form.ToInput())
	})
}

func (s *service) Deactivate(ctx context.Context, sess *session.Session, id string) (ClientView, error) {
	if err := requireAdmin(sess); err != nil {
		return ClientView{}, err
	}
	return s.write(ctx, sess, id, func() (*kairosapi.Customer, error) {
		return s.api.DeactivateClient(ctx, id)
	})
}

func (s *service) write(ctx context.Context, sess *session.Session, id string, fn func() (*kairosapi.Customer, error)) (ClientView, error) {
	release, err := s.guard.Acquire(ctx, sess.ID, inflight.Action(inflight.ActionClientWrite, id))
	if err != nil {
		return ClientView{}, err
	}
	defer release()
	ctx = s.logg.WithAction(ctx, inflight.ActionClientWrite)

	client, err := fn()
	if err != nil {
		return ClientView{}, err
	}
	if client == nil || client.ID == "" {
		return ClientView{ID: id}, nil
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "client_id", client.ID), "client.saved")
	}
	return NewClientView(*client), nil
}

func requireAdmin(sess *session.Session) error {
	if !session.CanAccessAdmin(sess) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return nil
}
