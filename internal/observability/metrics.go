// Package observability holds Prometheus metrics and OpenTelemetry tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ModerationVerdicts counts moderation filter outcomes.
	// outcome is one of "accepted", "rejected", "empty".
	ModerationVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_moderation_verdicts_total",
		Help: "Total number of moderation filter verdicts by outcome",
	}, []string{"outcome"})

	// SubmissionsCreated counts persisted submissions and replies by kind.
	SubmissionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_content_created_total",
		Help: "Total number of persisted content rows by kind",
	}, []string{"kind"})
)
