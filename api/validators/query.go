package validators

import (
	"net/http"
	"strings"

	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
)

const maxSearchLength = 120

// SearchQuery returns the trimmed free-text filter from ?q=.
func SearchQuery(r *http.Request) string {
	return SanitizeString(r.URL.Query().Get("q"), maxSearchLength)
}

// ParseStatusFilter reads ?status=. Blank and "all" mean no filter.
func ParseStatusFilter(r *http.Request) (*enums.OrderStatus, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if raw == "" || raw == "all" || raw == "todos" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}
