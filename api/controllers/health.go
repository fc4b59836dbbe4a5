package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mt-arl/kairosMIxFront/api/responses"
	"github.com/mt-arl/kairosMIxFront/pkg/config"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-KairosMix-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only while redis answers; sessions and selections live there.
func HealthReady(cfg *config.Config, redis pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-KairosMix-Env", cfg.App.Env)
		if redis != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := redis.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
