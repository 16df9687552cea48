package metrics

import (
	"context"

	"github.com/BradenHooton/gridboard/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors exported on /metrics
type Metrics struct {
	// RequestTotal counts HTTP requests by method, route and status
	RequestTotal *prometheus.CounterVec
	// RequestDuration is the latency of HTTP requests
	RequestDuration *prometheus.HistogramVec
	// MutationsTotal counts audited mutations by action and outcome
	MutationsTotal *prometheus.CounterVec
	// DemoResets counts completed dataset resets
	DemoResets prometheus.Counter
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridboard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridboard_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridboard_mutations_total",
				Help: "Total number of record mutations",
			},
			[]string{"action", "status"},
		),
		DemoResets: factory.NewCounter(prometheus.CounterOpts{
			Name: "gridboard_demo_resets_total",
			Help: "Total number of demo dataset resets",
		}),
	}
}

// MutationLogger is implemented by logger.AuditLogger
type MutationLogger interface {
	LogMutation(ctx context.Context, event logger.MutationEvent) string
}

// CountingAudit forwards audit events to Next and counts them
type CountingAudit struct {
	Next    MutationLogger
	Metrics *Metrics
}

func (c CountingAudit) LogMutation(ctx context.Context, event logger.MutationEvent) string {
	status := "success"
	if !event.Success {
		status = "failure"
	}
	c.Metrics.MutationsTotal.WithLabelValues(event.Action, status).Inc()
	return c.Next.LogMutation(ctx, event)
}
