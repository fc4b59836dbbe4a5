package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mt-arl/kairosMIxFront/api/controllers"
	"github.com/mt-arl/kairosMIxFront/api/middleware"
	"github.com/mt-arl/kairosMIxFront/api/responses"
	"github.com/mt-arl/kairosMIxFront/internal/catalog"
	"github.com/mt-arl/kairosMIxFront/internal/clients"
	"github.com/mt-arl/kairosMIxFront/internal/mixes"
	"github.com/mt-arl/kairosMIxFront/internal/orders"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/config"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

type redisPinger interface {
	Ping(ctx context.Context) error
}

type rateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type rateLimitRecorder interface {
	IncRateLimited(action string)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient redisPinger,
	rateStore rateLimitStore,
	rateRecorder rateLimitRecorder,
	metricsHandler http.Handler,
	sessionService session.Service,
	selectionService selection.Service,
	catalogService catalog.Service,
	clientsService clients.Service,
	mixesService mixes.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, redisClient, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, rateRecorder, logg)).Post("/login", controllers.AuthLogin(sessionService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, rateRecorder, logg)).Post("/register", controllers.AuthRegister(clientsService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionService, logg))
	})

	r.Route("/api/catalog", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(sessionService, logg))
		r.Get("/products", controllers.CatalogProducts(catalogService, selectionService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sessionService, logg))

		r.Get("/api/session", controllers.SessionCurrent(logg))

		r.Route("/api/selection", func(r chi.Router) {
			r.Get("/", controllers.SelectionView(selectionService, logg))
			r.Delete("/", controllers.SelectionClear(selectionService, logg))
			r.Post("/toggle", controllers.SelectionToggle(selectionService, logg))
			r.Put("/items/{productId}", controllers.SelectionSetQuantity(selectionService, logg))
			r.Delete("/items/{productId}", controllers.SelectionRemove(selectionService, logg))
		})

		r.Route("/api/mixes", func(r chi.Router) {
			r.Get("/", controllers.MixList(mixesService, logg))
			r.Post("/", controllers.MixSave(mixesService, logg))
			r.Post("/{mixId}/use", controllers.MixUse(mixesService, logg))
			r.Get("/{mixId}/order-draft", controllers.MixOrderDraft(mixesService, logg))
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Post("/", controllers.OrderSubmit(ordersService, logg))
			r.Post("/items", controllers.OrderSubmitItems(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderGet(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(ordersService, logg))
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProducts(catalogService, logg))
				r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
				r.Get("/{productId}", controllers.AdminProduct(catalogService, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
				r.Patch("/{productId}/deactivate", controllers.AdminDeactivateProduct(catalogService, logg))
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", controllers.AdminClients(clientsService, logg))
				r.Post("/", controllers.AdminCreateClient(clientsService, logg))
				r.Get("/{clientId}", controllers.AdminClient(clientsService, logg))
				r.Put("/{clientId}", controllers.AdminUpdateClient(clientsService, logg))
				r.Patch("/{clientId}/deactivate", controllers.AdminDeactivateClient(clientsService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrders(ordersService, logg))
				r.Get("/statuses", controllers.AdminOrderStatusOptions(logg))
				r.Get("/{orderId}", controllers.OrderGet(ordersService, logg))
				r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(ordersService, logg))
				r.Post("/{orderId}/cancel", controllers.OrderCancel(ordersService, logg))
			})

			r.Get("/mixes", controllers.AdminMixes(mixesService, logg))
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	return r
}
