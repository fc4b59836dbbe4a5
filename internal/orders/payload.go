// Package orders composes order submissions from the working selection or a saved
// mix and derives the order views shown to customers and admins.
package orders

import (
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/quantity"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
)

// ErrNoItems rejects an order before it reaches the backend.
var ErrNoItems = pkgerrors.New(pkgerrors.CodeValidation, "order has no items")

// ToOrderPayload builds the body of POST /orders. Every line is ordered by weight.
func ToOrderPayload(items []selection.Item) (kairosapi.CreateOrderRequest, error) {
	if len(items) == 0 {
		return kairosapi.CreateOrderRequest{}, ErrNoItems
	}
	lines := make([]kairosapi.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, kairosapi.OrderLine{
			ProductID: strings.TrimSpace(item.Product.ID),
			Quantity:  quantity.Clamp(item.Quantity),
			Unit:      enums.ProductUnitLbs.String(),
		})
	}
	return kairosapi.CreateOrderRequest{Items: lines}, nil
}

// MixOrderPayload orders a saved mix by reference. The unit is left to the backend.
func MixOrderPayload(mixID string, qty any) (kairosapi.CreateOrderRequest, error) {
	mixID = strings.TrimSpace(mixID)
	if mixID == "" {
		return kairosapi.CreateOrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "mix id is required").
			WithDetails(map[string]any{"mixId": "is required"})
	}
	return kairosapi.CreateOrderRequest{Items: []kairosapi.OrderLine{{
		MixID:    mixID,
		Quantity: quantity.Clamp(qty),
	}}}, nil
}

// StatusOption is one entry of the admin status selector.
type StatusOption struct {
	Value enums.OrderStatus `json:"value"`
	Label string            `json:"label"`
}

// StatusOptions lists the statuses an admin may set directly. Cancellation has its
// own endpoint and is not among them.
func StatusOptions() []StatusOption {
	out := make([]StatusOption, 0, len(enums.OrderStatuses()))
	for _, status := range enums.OrderStatuses() {
		if status == enums.OrderStatusCancelado {
			continue
		}
		out = append(out, StatusOption{Value: status, Label: status.Label()})
	}
	return out
}

func isStatusOption(status enums.OrderStatus) bool {
	for _, option := range StatusOptions() {
		if option.Value == status {
			return true
		}
	}
	return false
}
