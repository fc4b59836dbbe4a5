package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records calls made to the KairosMix REST API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream call metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of KairosMix API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "KairosMix API calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, calls)
	return &UpstreamMetrics{
		duration: duration,
		calls:    calls,
	}
}

// Observe records one finished call. status is 0 when the request never got a reply.
func (u *UpstreamMetrics) Observe(operation string, status int, elapsed time.Duration) {
	if u == nil || u.duration == nil || u.calls == nil {
		return
	}
	op := normalizeLabel(operation)
	u.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	u.calls.WithLabelValues(op, outcomeFor(status)).Inc()
}

func outcomeFor(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status >= 200 && status < 300:
		return "success"
	case status >= 500:
		return "server_error"
	default:
		return "rejected"
	}
}

// GuardMetrics counts requests refused by the gateway before reaching the backend.
type GuardMetrics struct {
	rejections *prometheus.CounterVec
}

// NewGuardMetrics registers the guard rejection counter on the provided registerer.
func NewGuardMetrics(reg prometheus.Registerer) *GuardMetrics {
	if reg == nil {
		return &GuardMetrics{}
	}
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_rejections_total",
		Help: "Requests refused locally, by guard and action.",
	}, []string{"guard", "action"})
	reg.MustRegister(rejections)
	return &GuardMetrics{rejections: rejections}
}

// IncInFlight counts a duplicate submission refused while the same action was running.
func (g *GuardMetrics) IncInFlight(action string) {
	g.inc("inflight", action)
}

// IncRateLimited counts an auth attempt refused by the rate limiter.
func (g *GuardMetrics) IncRateLimited(action string) {
	g.inc("rate_limit", action)
}

func (g *GuardMetrics) inc(guard, action string) {
	if g == nil || g.rejections == nil {
		return
	}
	g.rejections.WithLabelValues(guard, normalizeLabel(action)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
