package controllers

import (
	"net/http"

	"github.com/mt-arl/kairosMIxFront/api/middleware"
	"github.com/mt-arl/kairosMIxFront/api/responses"
	"github.com/mt-arl/kairosMIxFront/api/validators"
	"github.com/mt-arl/kairosMIxFront/internal/catalog"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

// CatalogProducts lists active products. Signed-in callers get their current
// selection marked on each card.
func CatalogProducts(svc catalog.Service, selections selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog"))
			return
		}

		var selected *selection.Set
		if sess := middleware.SessionFromContext(r.Context()); sess != nil && selections != nil {
			current, err := selections.Current(r.Context(), sess.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			selected = current
		}

		products, err := svc.Catalog(r.Context(), validators.SearchQuery(r), selected)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}
