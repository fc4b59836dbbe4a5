package catalog

import (
	"context"

	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

type productAPI interface {
	ListProducts(ctx context.Context) ([]kairosapi.Product, error)
	SearchProducts(ctx context.Context, query string) ([]kairosapi.Product, error)
	GetProduct(ctx context.Context, id string) (*kairosapi.Product, error)
	CreateProduct(ctx context.Context, tokens kairosapi.TokenSource, input kairosapi.ProductInput) (*kairosapi.Product, error)
	UpdateProduct(ctx context.Context, tokens kairosapi.TokenSource, id string, input kairosapi.ProductInput) (*kairosapi.Product, error)
	DeactivateProduct(ctx context.Context, tokens kairosapi.TokenSource, id string) (*kairosapi.Product, error)
}

type guard interface {
	Acquire(ctx context.Context, scope, action string) (func(), error)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	API    productAPI
	Guard  guard
	Logger *logger.Logger
}

// Service exposes the storefront catalog and the admin product operations.
type Service interface {
	Catalog(ctx context.Context, query string, selected *selection.Set) ([]ProductView, error)
	AdminList(ctx context.Context, query string) ([]ProductView, error)
	Get(ctx context.Context, id string) (ProductView, error)
	Create(ctx context.Context, sess *session.Session, form ProductForm) (ProductView, error)
	Update(ctx context.Context, sess *session.Session, id string, form ProductForm) (ProductView, error)
	Deactivate(ctx context.Context, sess *session.Session, id string) (ProductView, error)
}

type service struct {
	api   productAPI
	guard guard
	logg  *logger.Logger
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product api is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inflight guard is required")
	}
	return &service{api: params.API, guard: params.Guard, logg: params.Logger}, nil
}

// Catalog lists the active products matching query by name or category.
func (s *service) Catalog(ctx context.Context, query string, selected *selection.Set) ([]ProductView, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	views := NewProductViews(products, selected)
	active := views[:0]
	for _, v := range views {
		if v.Active {
			active = append(active, v)
		}
	}
	return Filter(active, query), nil
}

// AdminList returns every product, or the backend search results when query is set.
func (s *service) AdminList(ctx context.Context, query string) ([]ProductView, error) {
	products, err := s.api.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	return NewProductViews(products, nil), nil
}

func (s *service) Get(ctx context.Context, id string) (ProductView, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	return NewProductView(*product), nil
}

func (s *service) Create(ctx context.Context, sess *session.Session, form ProductForm) (ProductView, error) {
	return s.write(ctx, sess, "", &form, func() (*kairosapi.Product, error) {
		return s.api.CreateProduct(ctx, sess, form.ToInput())
	})
}

func (s *service) Update(ctx context.Context, sess *session.Session, id string, form ProductForm) (ProductView, error) {
	return s.write(ctx, sess, id, &form, func() (*kairosapi.Product, error) {
		return s.api.UpdateProduct(ctx, sess, id, form.ToInput())
	})
}

func (s *service) Deactivate(ctx context.Context, sess *session.Session, id string) (ProductView, error) {
	return s.write(ctx, sess, id, nil, func() (*kairosapi.Product, error) {
		return s.api.DeactivateProduct(ctx, sess, id)
	})
}

// write validates form when given, then forwards fn under the product write guard.
func (s *service) write(ctx context.Context, sess *session.Session, id string, form *ProductForm, fn func() (*kairosapi.Product, error)) (ProductView, error) {
	if !session.CanAccessAdmin(sess) {
		return ProductView{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	if form != nil {
		if err := form.Validate(); err != nil {
			return ProductView{}, err
		}
	}

	release, err := s.guard.Acquire(ctx, sess.ID, inflight.Action(inflight.ActionProductWrite, id))
	if err != nil {
		return ProductView{}, err
	}
	defer release()
	ctx = s.logg.WithAction(ctx, inflight.ActionProductWrite)

	product, err := fn()
	if err != nil {
		return ProductView{}, err
	}
	if product == nil || product.ID == "" {
		// the reply carried only a message
		return ProductView{ID: id}, nil
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "product.saved")
	}
	return NewProductView(*product), nil
}
