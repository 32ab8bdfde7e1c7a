// Package observability exposes Prometheus metrics and request logging for
// the wallet and progress engine. Counters are registered at import via
// promauto; the API server serves them on /metrics.
package observability

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Wallet Metrics ─────────────────────────────────────────────────────────

// RefillsApplied counts daily refills that actually changed a wallet.
var RefillsApplied = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Subsystem: "wallet",
	Name:      "refills_applied_total",
	Help:      "Total daily refills applied (no-op refill checks excluded).",
})

// CreditsSpent counts credits debited for lesson attempts.
var CreditsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Subsystem: "wallet",
	Name:      "credits_spent_total",
	Help:      "Total credits debited for lesson attempts.",
})

// SpendsRejected counts spend attempts refused for insufficient balance.
var SpendsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Subsystem: "wallet",
	Name:      "spends_rejected_total",
	Help:      "Total spend attempts rejected with insufficient credits.",
})

// BonusesAwarded counts first-lesson bonuses granted.
var BonusesAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Subsystem: "wallet",
	Name:      "bonuses_awarded_total",
	Help:      "Total first-lesson bonuses granted.",
})

// ─── Progress Metrics ───────────────────────────────────────────────────────

// AttemptsCompleted counts completed lesson attempts.
var AttemptsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Subsystem: "progress",
	Name:      "attempts_completed_total",
	Help:      "Total completed lesson attempts.",
})

// XPAwarded counts XP granted across all users.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Subsystem: "progress",
	Name:      "xp_awarded_total",
	Help:      "Total XP granted for completed attempts.",
})

// ─── HTTP Metrics & Request Log ─────────────────────────────────────────────

// RequestDuration observes handler latency by method and status class.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "lingua",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by method and status class.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
}, []string{"method", "status"})

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records latency metrics and writes a request log line.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		RequestDuration.WithLabelValues(r.Method, statusClass(rec.status)).Observe(elapsed.Seconds())
		log.Printf("http %s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed.Round(time.Microsecond))
	})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
