package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "solireserve"

// Metrics holds the business and transport collectors of the service.
type Metrics struct {
	// Tarification
	QuotesTotal              *prometheus.CounterVec
	ConventionFallbacksTotal *prometheus.CounterVec

	// Reservation processes
	TransitionsTotal *prometheus.CounterVec
	RejectionsTotal  *prometheus.CounterVec

	// Events
	EventsPublishedTotal *prometheus.CounterVec
	EventsConsumedTotal  *prometheus.CounterVec

	// HTTP
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer outside tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QuotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tariff_quotes_total",
				Help:      "Effective prices computed from a convention",
			},
			[]string{"source", "axis"},
		),
		ConventionFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tariff_fallbacks_total",
				Help:      "Reservations priced at the room standard price instead of a convention",
			},
			[]string{"reason"},
		),
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "process_transitions_total",
				Help:      "Accepted reservation process transitions",
			},
			[]string{"stage", "status"},
		),
		RejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "process_rejections_total",
				Help:      "Rejected reservation process transitions",
			},
			[]string{"stage", "reason"},
		),
		EventsPublishedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Events written to kafka",
			},
			[]string{"topic", "result"},
		),
		EventsConsumedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_consumed_total",
				Help:      "Events read from kafka by the worker",
			},
			[]string{"topic", "result"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// NewDefault registers on the process wide registry served at /metrics, once per process.
func NewDefault() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})

	return defaultMetrics
}
