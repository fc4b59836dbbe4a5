package selection

import (
	"context"
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
)

type productLookup interface {
	GetProduct(ctx context.Context, id string) (*kairosapi.Product, error)
}

type guard interface {
	Acquire(ctx context.Context, scope, action string) (func(), error)
}

// ServiceParams groups dependencies for the selection service.
type ServiceParams struct {
	Store    Store
	Products productLookup
	Guard    guard
}

// Service exposes the per-session working set. Every mutation is serialized per
// session and persisted before the new view is returned.
type Service interface {
	Current(ctx context.Context, sessionID string) (*Set, error)
	View(ctx context.Context, sessionID string) (View, error)
	Toggle(ctx context.Context, sessionID, productID string) (View, bool, error)
	SetQuantity(ctx context.Context, sessionID, productID string, raw any) (View, error)
	Remove(ctx context.Context, sessionID, productID string) (View, error)
	Clear(ctx context.Context, sessionID string) error
	RemoveSubmitted(ctx context.Context, sessionID string, items []Item) error
	Replace(ctx context.Context, sessionID string, set *Set) (View, error)
}

type service struct {
	store    Store
	products productLookup
	guard    guard
}

// NewService builds a selection service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection store is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product lookup is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inflight guard is required")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		guard:    params.Guard,
	}, nil
}

func (s *service) Current(ctx context.Context, sessionID string) (*Set, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *service) View(ctx context.Context, sessionID string) (View, error) {
	set, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return NewView(set), nil
}

// Toggle removes a selected product, or looks the product up and selects it with the
// default weight. The bool reports whether the product is now selected.
func (s *service) Toggle(ctx context.Context, sessionID, productID string) (View, bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return View{}, false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required").
			WithDetails(map[string]any{"productId": "is required"})
	}

	var inserted bool
	view, err := s.mutate(ctx, sessionID, func(set *Set) error {
		if set.IsSelected(productID) {
			set.Remove(productID)
			return nil
		}
		product, err := s.products.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		selected := ProductFromAPI(*product)
		if selected.ID == "" {
			selected.ID = productID
		}
		inserted = set.Toggle(selected)
		return nil
	})
	return view, inserted, err
}

// SetQuantity clamps raw onto a selected product. Unselected products are left alone.
func (s *service) SetQuantity(ctx context.Context, sessionID, productID string, raw any) (View, error) {
	return s.mutate(ctx, sessionID, func(set *Set) error {
		set.SetQuantity(strings.TrimSpace(productID), raw)
		return nil
	})
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) (View, error) {
	return s.mutate(ctx, sessionID, func(set *Set) error {
		set.Remove(strings.TrimSpace(productID))
		return nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, func(set *Set) error {
		set.Clear()
		return nil
	})
	return err
}

// RemoveSubmitted takes the lines of a saved mix or placed order out of the working
// set under the selection guard.
func (s *service) RemoveSubmitted(ctx context.Context, sessionID string, items []Item) error {
	_, err := s.mutate(ctx, sessionID, func(set *Set) error {
		set.RemoveSubmitted(items)
		return nil
	})
	return err
}

// Replace swaps the working set for set, as when a saved mix is reused.
func (s *service) Replace(ctx context.Context, sessionID string, set *Set) (View, error) {
	return s.mutate(ctx, sessionID, func(current *Set) error {
		current.Clear()
		if set != nil {
			for _, item := range set.Items() {
				current.add(item)
			}
		}
		return nil
	})
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*Set) error) (View, error) {
	if strings.TrimSpace(sessionID) == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}
	release, err := s.guard.Acquire(ctx, sessionID, inflight.ActionSelection)
	if err != nil {
		return View{}, err
	}
	defer release()

	set, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if err := fn(set); err != nil {
		return View{}, err
	}
	if err := s.store.Save(ctx, sessionID, set); err != nil {
		return View{}, err
	}
	return NewView(set), nil
}
