package orders

import (
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/money"
)

const shortRefLength = 6

// AdminOrderFilters describe the inputs supported by the admin orders list.
type AdminOrderFilters struct {
	Status *enums.OrderStatus
	Query  string
}

// OrderLineView is one order line as displayed.
type OrderLineView struct {
	Name            string  `json:"name"`
	IsMix           bool    `json:"isMix"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit,omitempty"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// OrderView exposes an order with its display fields derived.
type OrderView struct {
	ID           string            `json:"id"`
	Ref          string            `json:"ref"`
	Status       enums.OrderStatus `json:"status"`
	StatusLabel  string            `json:"statusLabel"`
	Cancelable   bool              `json:"cancelable"`
	Total        float64           `json:"total"`
	TotalDisplay string            `json:"totalDisplay"`
	Items        []OrderLineView   `json:"items"`
	ClientName   string            `json:"clientName,omitempty"`
	ClientEmail  string            `json:"clientEmail,omitempty"`
	CreatedAt    string            `json:"createdAt,omitempty"`
}

// AdminOrderList wraps the filtered orders plus per-status counts over all orders.
type AdminOrderList struct {
	Orders []OrderView               `json:"orders"`
	Counts map[enums.OrderStatus]int `json:"counts"`
	Total  int                       `json:"total"`
}

// ShortRef is the upper-cased tail of an order id shown to customers.
func ShortRef(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > shortRefLength {
		id = id[len(id)-shortRefLength:]
	}
	return strings.ToUpper(id)
}

// orderTotal reads total, then totalPrice. A zero total falls through.
func orderTotal(order kairosapi.Order) float64 {
	if order.Total != nil && *order.Total != 0 {
		return *order.Total
	}
	if order.TotalPrice != nil {
		return *order.TotalPrice
	}
	return 0
}

func lineName(item kairosapi.OrderItem) string {
	if item.Product != nil && strings.TrimSpace(item.Product.Name) != "" {
		return strings.TrimSpace(item.Product.Name)
	}
	if item.CustomMix != nil && strings.TrimSpace(item.CustomMix.Name) != "" {
		return strings.TrimSpace(item.CustomMix.Name)
	}
	return selection.PlaceholderName
}

func NewOrderView(order kairosapi.Order) OrderView {
	status := enums.OrderStatus(strings.ToLower(strings.TrimSpace(order.Status)))
	total := orderTotal(order)

	lines := make([]OrderLineView, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLineView{
			Name:            lineName(item),
			IsMix:           item.CustomMix != nil,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}

	view := OrderView{
		ID:           order.ID,
		Ref:          ShortRef(order.ID),
		Status:       status,
		StatusLabel:  status.Label(),
		Cancelable:   status.IsCancelable(),
		Total:        money.Round2(total).InexactFloat64(),
		TotalDisplay: money.Format(total),
		Items:        lines,
		CreatedAt:    order.CreatedAt,
	}
	if order.Client != nil {
		view.ClientName = order.Client.Nombre
		view.ClientEmail = order.Client.Correo
	}
	return view
}

func NewOrderViews(orders []kairosapi.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderView(order))
	}
	return out
}

// FilterAdmin applies the status filter and the search over id, client name and
// client email. Counts are taken over every order, before filtering.
func FilterAdmin(views []OrderView, filters AdminOrderFilters) AdminOrderList {
	counts := make(map[enums.OrderStatus]int, len(enums.OrderStatuses()))
	for _, status := range enums.OrderStatuses() {
		counts[status] = 0
	}
	for _, v := range views {
		if v.Status.IsValid() {
			counts[v.Status]++
		}
	}

	needle := strings.ToLower(strings.TrimSpace(filters.Query))
	out := make([]OrderView, 0, len(views))
	for _, v := range views {
		if filters.Status != nil && v.Status != *filters.Status {
			continue
		}
		if needle != "" && !matchesQuery(v, needle) {
			continue
		}
		out = append(out, v)
	}
	return AdminOrderList{Orders: out, Counts: counts, Total: len(views)}
}

func matchesQuery(v OrderView, needle string) bool {
	for _, field := range []string{v.ID, v.ClientName, v.ClientEmail} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
