// Package metrics defines the Prometheus instrumentation for the support
// pipeline. All collectors register on the default registry so the server
// only needs to expose promhttp.Handler().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts completed pipeline turns by resolved intent and
	// outcome status (success, blocked, error).
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careline_turns_total",
		Help: "Total number of pipeline turns processed.",
	}, []string{"intent", "status"})

	// TurnDuration observes wall-clock latency per turn in seconds.
	TurnDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "careline_turn_duration_seconds",
		Help:    "Latency of pipeline turns in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})

	// PIIMasked counts masked PII tokens by category (email, phone, rrn, card).
	PIIMasked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careline_pii_masked_total",
		Help: "Total number of PII tokens masked by the sanitizer.",
	}, []string{"category"})

	// ProfanityMasked counts masked profanity occurrences.
	ProfanityMasked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careline_profanity_masked_total",
		Help: "Total number of profanity occurrences masked by the sanitizer.",
	})

	// TurnsBlocked counts turns rejected by the sanitizer guardrail.
	TurnsBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careline_turns_blocked_total",
		Help: "Total number of turns blocked by the profanity guardrail.",
	})

	// RemoteFallbacks counts remote agent calls that fell back to the
	// canned error response.
	RemoteFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careline_remote_fallbacks_total",
		Help: "Total number of remote agent calls that returned the fallback response.",
	})

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careline_ratelimit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter.",
	})
)
