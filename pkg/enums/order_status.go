package enums

import (
	"fmt"
	"strings"
)

// OrderStatus is the backend-owned lifecycle label of an order.
type OrderStatus string

const (
	OrderStatusPendiente  OrderStatus = "pendiente"
	OrderStatusPagado     OrderStatus = "pagado"
	OrderStatusEnProceso  OrderStatus = "en proceso"
	OrderStatusDespachado OrderStatus = "despachado"
	OrderStatusCompletado OrderStatus = "completado"
	OrderStatusCancelado  OrderStatus = "cancelado"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPendiente,
	OrderStatusPagado,
	OrderStatusEnProceso,
	OrderStatusDespachado,
	OrderStatusCompletado,
	OrderStatusCancelado,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPendiente:  "Pendiente",
	OrderStatusPagado:     "Pagado",
	OrderStatusEnProceso:  "En Proceso",
	OrderStatusDespachado: "Despachado",
	OrderStatusCompletado: "Completado",
	OrderStatusCancelado:  "Cancelado",
}

// Cancellation is offered locally only from these states; the backend has the final word.
var cancelableOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPendiente: {},
	OrderStatusPagado:    {},
	OrderStatusEnProceso: {},
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the display label. Unknown statuses render like pendiente.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return orderStatusLabels[OrderStatusPendiente]
}

// IsCancelable reports whether a cancel action should be offered for the status.
func (s OrderStatus) IsCancelable() bool {
	_, ok := cancelableOrderStatuses[s]
	return ok
}

// OrderStatuses lists every known status in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validOrderStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
