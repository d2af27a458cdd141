// Package metrics exposes Prometheus metrics for the SkillSwap API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets the registry metrics are registered on and served from.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Manager owns every collector. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ledgerEntries *prometheus.CounterVec
	ledgerCoins   *prometheus.CounterVec
	ledgerDenied  prometheus.Counter

	requestTransitions *prometheus.CounterVec
	quizSubmissions    *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
}

// NewManager creates a metrics manager on its own registry with Go and process collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillswap",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method", "status_code"})

	m.ledgerEntries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "entries_total",
		Help:      "Ledger entries written, by direction",
	}, []string{"direction"})

	m.ledgerCoins = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "coins_total",
		Help:      "Coins moved through the ledger, by direction",
	}, []string{"direction"})

	m.ledgerDenied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "insufficient_funds_total",
		Help:      "Debits refused because the balance was too low",
	})

	m.requestTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "mentorship",
		Name:      "transitions_total",
		Help:      "Mentorship request status changes, by target status",
	}, []string{"status"})

	m.quizSubmissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "mentorship",
		Name:      "quiz_submissions_total",
		Help:      "Quiz submissions by outcome",
	}, []string{"outcome"})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Recommendation cache lookups by result",
	}, []string{"result"})

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one served request
func (m *Manager) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(elapsed.Seconds())
}

// RecordLedgerEntry records a committed ledger entry
func (m *Manager) RecordLedgerEntry(direction string, amount int) {
	if m == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(direction).Inc()
	m.ledgerCoins.WithLabelValues(direction).Add(float64(amount))
}

// RecordInsufficientFunds records a refused debit
func (m *Manager) RecordInsufficientFunds() {
	if m == nil {
		return
	}
	m.ledgerDenied.Inc()
}

// RecordTransition records a request moving to status
func (m *Manager) RecordTransition(status string) {
	if m == nil {
		return
	}
	m.requestTransitions.WithLabelValues(status).Inc()
}

// RecordQuiz records a graded quiz
func (m *Manager) RecordQuiz(passed bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	m.quizSubmissions.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup records a cache hit or miss
func (m *Manager) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
