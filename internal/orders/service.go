package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	"github.com/mt-arl/kairosMIxFront/internal/quantity"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

// ItemInput is one line of an explicitly composed order: a product by weight or a
// saved mix by reference.
type ItemInput struct {
	ProductID string `json:"productId"`
	MixID     string `json:"mixId"`
	Quantity  any    `json:"quantity"`
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	API       OrderAPI
	Selection selectionSource
	Guard     guard
	Logger    *logger.Logger
}

// Service submits orders and forwards lifecycle requests to the backend, which owns
// every status transition.
type Service interface {
	Submit(ctx context.Context, sess *session.Session) (OrderView, error)
	SubmitItems(ctx context.Context, sess *session.Session, items []ItemInput) (OrderView, error)
	List(ctx context.Context, sess *session.Session) ([]OrderView, error)
	Get(ctx context.Context, sess *session.Session, orderID string) (OrderView, error)
	Cancel(ctx context.Context, sess *session.Session, orderID string) (OrderView, error)
	ListAdmin(ctx context.Context, sess *session.Session, filters AdminOrderFilters) (AdminOrderList, error)
	UpdateStatus(ctx context.Context, sess *session.Session, orderID, status string) (OrderView, error)
}

type service struct {
	api       OrderAPI
	selection selectionSource
	guard     guard
	logg      *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order api is required")
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

// Submit orders the session's working selection and removes the ordered lines from
// it once the backend accepts the order.
func (s *service) Submit(ctx context.Context, sess *session.Session) (OrderView, error) {
	if _, err := sess.BearerToken(); err != nil {
		return OrderView{}, err
	}
	set, err := s.selection.Current(ctx, sess.ID)
	if err != nil {
		return OrderView{}, err
	}
	submitted := set.Items()
	payload, err := ToOrderPayload(submitted)
	if err != nil {
		return OrderView{}, err
	}

	view, err := s.create(ctx, sess, payload)
	if err != nil {
		return OrderView{}, err
	}

	if err := s.selection.RemoveSubmitted(ctx, sess.ID, submitted); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"session_id": sess.ID, "order_id": view.ID, "error": err.Error()}), "order.submitted_selection_not_cleared")
	}
	return view, nil
}

// SubmitItems orders an explicit list of lines, typically seeded from a saved mix.
// The working selection is left alone.
func (s *service) SubmitItems(ctx context.Context, sess *session.Session, items []ItemInput) (OrderView, error) {
	if _, err := sess.BearerToken(); err != nil {
		return OrderView{}, err
	}
	payload, err := itemsPayload(items)
	if err != nil {
		return OrderView{}, err
	}
	return s.create(ctx, sess, payload)
}

func (s *service) create(ctx context.Context, sess *session.Session, payload kairosapi.CreateOrderRequest) (OrderView, error) {
	release, err := s.guard.Acquire(ctx, sess.ID, inflight.ActionSubmitOrder)
	if err != nil {
		return OrderView{}, err
	}
	defer release()
	ctx = s.logg.WithAction(ctx, inflight.ActionSubmitOrder)

	order, err := s.api.CreateOrder(ctx, sess, payload)
	if err != nil {
		return OrderView{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"order_id": order.ID, "lines": len(payload.Items)}), "order.submitted")
	}
	return NewOrderView(*order), nil
}

func itemsPayload(items []ItemInput) (kairosapi.CreateOrderRequest, error) {
	if len(items) == 0 {
		return kairosapi.CreateOrderRequest{}, ErrNoItems
	}
	lines := make([]kairosapi.OrderLine, 0, len(items))
	details := map[string]any{}
	for i, item := range items {
		productID := strings.TrimSpace(item.ProductID)
		mixID := strings.TrimSpace(item.MixID)
		switch {
		case productID != "" && mixID != "":
			details[fmt.Sprintf("items[%d]", i)] = "productId and mixId are mutually exclusive"
		case productID != "":
			lines = append(lines, kairosapi.OrderLine{
				ProductID: productID,
				Quantity:  quantity.Clamp(item.Quantity),
				Unit:      enums.ProductUnitLbs.String(),
			})
		case mixID != "":
			mixPayload, err := MixOrderPayload(mixID, item.Quantity)
			if err != nil {
				return kairosapi.CreateOrderRequest{}, err
			}
			lines = append(lines, mixPayload.Items...)
		default:
			details[fmt.Sprintf("items[%d]", i)] = "productId or mixId is required"
		}
	}
	if len(details) > 0 {
		return kairosapi.CreateOrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order items").WithDetails(details)
	}
	return kairosapi.CreateOrderRequest{Items: lines}, nil
}

func (s *service) List(ctx context.Context, sess *session.Session) ([]OrderView, error) {
	orders, err := s.api.ListOrders(ctx, sess)
	if err != nil {
		return nil, err
	}
	return NewOrderViews(orders), nil
}

func (s *service) Get(ctx context.Context, sess *session.Session, orderID string) (OrderView, error) {
	order, err := s.api.GetOrder(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	return NewOrderView(*order), nil
}

// Cancel forwards a cancellation when the last known status still allows one.
func (s *service) Cancel(ctx context.Context, sess *session.Session, orderID string) (OrderView, error) {
	if _, err := sess.BearerToken(); err != nil {
		return OrderView{}, err
	}
	release, err := s.guard.Acquire(ctx, sess.ID, inflight.Action(inflight.ActionCancelOrder, orderID))
	if err != nil {
		return OrderView{}, err
	}
	defer release()
	ctx = s.logg.WithAction(ctx, inflight.ActionCancelOrder)

	current, err := s.api.GetOrder(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	view := NewOrderView(*current)
	if !view.Cancelable {
		return OrderView{}, pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled").
			WithDetails(map[string]any{"status": view.Status})
	}

	cancelled, err := s.api.CancelOrder(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	if cancelled == nil {
		// the reply carried only a message
		current.Status = enums.OrderStatusCancelado.String()
		cancelled = current
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", orderID), "order.cancelled")
	}
	return NewOrderView(*cancelled), nil
}

// ListAdmin lists every order visible to the admin token, filtered and counted.
func (s *service) ListAdmin(ctx context.Context, sess *session.Session, filters AdminOrderFilters) (AdminOrderList, error) {
	if !session.CanAccessAdmin(sess) {
		return AdminOrderList{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	orders, err := s.api.ListOrders(ctx, sess)
	if err != nil {
		return AdminOrderList{}, err
	}
	return FilterAdmin(NewOrderViews(orders), filters), nil
}

// UpdateStatus asks the backend to move an order to status. Cancelled orders are final.
func (s *service) UpdateStatus(ctx context.Context, sess *session.Session, orderID, status string) (OrderView, error) {
	if !session.CanAccessAdmin(sess) {
		return OrderView{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	target, err := enums.ParseOrderStatus(status)
	if err != nil || !isStatusOption(target) {
		return OrderView{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": "must be one of pendiente, pagado, en proceso, despachado, completado"})
	}

	release, err := s.guard.Acquire(ctx, sess.ID, inflight.Action(inflight.ActionUpdateStatus, orderID))
	if err != nil {
		return OrderView{}, err
	}
	defer release()
	ctx = s.logg.WithAction(ctx, inflight.ActionUpdateStatus)

	current, err := s.api.GetOrder(ctx, sess, orderID)
	if err != nil {
		return OrderView{}, err
	}
	if enums.OrderStatus(strings.ToLower(strings.TrimSpace(current.Status))) == enums.OrderStatusCancelado {
		return OrderView{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cancelled orders cannot change status").
			WithDetails(map[string]any{"status": enums.OrderStatusCancelado})
	}

	updated, err := s.api.UpdateOrderStatus(ctx, sess, orderID, target.String())
	if err != nil {
		return OrderView{}, err
	}
	if updated == nil || updated.ID == "" {
		current.Status = target.String()
		updated = current
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"order_id": orderID, "status": target.String()}), "order.status_updated")
	}
	return NewOrderView(*updated), nil
}
