// Package inflight keeps one request per session and action running at a time.
package inflight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/metrics"
	"github.com/mt-arl/kairosMIxFront/pkg/redis"
)

const (
	defaultTTL     = 30 * time.Second
	releaseTimeout = 2 * time.Second
)

// Actions guarded on behalf of a session.
const (
	ActionSelection    = "selection"
	ActionSaveMix      = "save_mix"
	ActionSubmitOrder  = "submit_order"
	ActionCancelOrder  = "cancel_order"
	ActionUpdateStatus = "update_status"
	ActionProductWrite = "product_write"
	ActionClientWrite  = "client_write"
)

// ErrInProgress is returned when the same action is already running for the scope.
var ErrInProgress = pkgerrors.New(pkgerrors.CodeConflict, "request already in progress")

type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	InFlightKey(sessionID, action string) string
}

// Guard is a redis-backed single-slot token per (scope, action).
type Guard struct {
	store   redisStore
	ttl     time.Duration
	metrics *metrics.GuardMetrics
}

// NewGuard constructs a guard. Markers expire after ttl so a crashed request cannot
// block its action forever.
func NewGuard(store redisStore, ttl time.Duration, m *metrics.GuardMetrics) (*Guard, error) {
	if store == nil {
		return nil, errors.New("redis store required for inflight guard")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Guard{store: store, ttl: ttl, metrics: m}, nil
}

// Action joins an action with the resource it targets ("cancel_order:<id>").
func Action(name, resourceID string) string {
	resourceID = strings.TrimSpace(resourceID)
	if resourceID == "" {
		return name
	}
	return name + ":" + resourceID
}

// Acquire claims the slot for action within scope. The returned release func is
// safe to call more than once and only frees a slot this call still owns.
func (g *Guard) Acquire(ctx context.Context, scope, action string) (func(), error) {
	if strings.TrimSpace(scope) == "" || strings.TrimSpace(action) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inflight scope and action are required")
	}
	key := g.store.InFlightKey(scope, action)
	owner := uuid.NewString()

	ok, err := g.store.SetNX(ctx, key, owner, g.ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("setnx %s: %w", key, err), "inflight guard unavailable")
	}
	if !ok {
		g.metrics.IncInFlight(baseAction(action))
		return nil, ErrInProgress
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		g.release(releaseCtx, key, owner)
	}, nil
}

func (g *Guard) release(ctx context.Context, key, owner string) {
	value, err := g.store.Get(ctx, key)
	if err != nil || value != owner {
		// a missing or foreign marker is left alone; the TTL reclaims failures
		return
	}
	_ = g.store.Del(ctx, key)
}

func baseAction(action string) string {
	if idx := strings.Index(action, ":"); idx > 0 {
		return action[:idx]
	}
	return action
}

var _ redisStore = (*redis.Client)(nil)
