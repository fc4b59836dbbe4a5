package orders

import (
	"context"

	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
)

// OrderAPI is the slice of the KairosMix client the order service forwards to.
type OrderAPI interface {
	CreateOrder(ctx context.Context, tokens kairosapi.TokenSource, req kairosapi.CreateOrderRequest) (*kairosapi.Order, error)
	ListOrders(ctx context.Context, tokens kairosapi.TokenSource) ([]kairosapi.Order, error)
	GetOrder(ctx context.Context, tokens kairosapi.TokenSource, id string) (*kairosapi.Order, error)
	UpdateOrderStatus(ctx context.Context, tokens kairosapi.TokenSource, id, status string) (*kairosapi.Order, error)
	CancelOrder(ctx context.Context, tokens kairosapi.TokenSource, id string) (*kairosapi.Order, error)
}

type selectionSource interface {
	Current(ctx context.Context, sessionID string) (*selection.Set, error)
	RemoveSubmitted(ctx context.Context, sessionID string, items []selection.Item) error
}

type guard interface {
	Acquire(ctx context.Context, scope, action string) (func(), error)
}
