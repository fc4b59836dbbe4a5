package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mt-arl/kairosMIxFront/api/routes"
	"github.com/mt-arl/kairosMIxFront/internal/catalog"
	"github.com/mt-arl/kairosMIxFront/internal/clients"
	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	"github.com/mt-arl/kairosMIxFront/internal/mixes"
	"github.com/mt-arl/kairosMIxFront/internal/orders"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/config"
	"github.com/mt-arl/kairosMIxFront/pkg/instance"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
	"github.com/mt-arl/kairosMIxFront/pkg/metrics"
	"github.com/mt-arl/kairosMIxFront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)
	guardMetrics := metrics.NewGuardMetrics(registry)

	api, err := kairosapi.NewClient(cfg.Upstream.BaseURL,
		kairosapi.WithTimeout(cfg.Upstream.Timeout),
		kairosapi.WithMetrics(upstreamMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	guard, err := inflight.NewGuard(redisClient, cfg.InFlight.TTL, guardMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create inflight guard", err)
		os.Exit(1)
	}

	selectionStore, err := selection.NewRedisStore(redisClient, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create selection store", err)
		os.Exit(1)
	}
	sessionStore, err := session.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}

	sessionService, err := session.NewService(session.ServiceParams{
		Auth:       api,
		Store:      sessionStore,
		Selections: selectionStore,
		TTL:        cfg.Session.TTL,
		IsAdmin:    cfg.Admin.IsAdminEmail,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	selectionService, err := selection.NewService(selection.ServiceParams{
		Store:    selectionStore,
		Products: api,
		Guard:    guard,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create selection service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{API: api, Guard: guard, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	clientsService, err := clients.NewService(clients.ServiceParams{API: api, Guard: guard, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create clients service", err)
		os.Exit(1)
	}

	mixesService, err := mixes.NewService(mixes.ServiceParams{
		API:       api,
		Selection: selectionService,
		Guard:     guard,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create mixes service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		API:       api,
		Selection: selectionService,
		Guard:     guard,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"upstream": cfg.Upstream.BaseURL,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			redisClient,
			guardMetrics,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			sessionService,
			selectionService,
			catalogService,
			clientsService,
			mixesService,
			ordersService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-stop.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		logg.Info(ctx, "shutting down storefront gateway")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	logg.Info(ctx, "starting storefront gateway")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "storefront gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
