// Package metrics holds the Prometheus instruments of the accounts service
// and the handler that exposes them.
package metrics

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accounts"

// Login outcomes recorded by LoginAttemptsTotal.
const (
	LoginSucceeded          = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginFailed             = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics
	LoginAttemptsTotal  *prometheus.CounterVec
	AuthorizationsTotal *prometheus.CounterVec

	// Business metrics
	UsersCreatedTotal prometheus.Counter
	UsersDeletedTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Total number of token requests by outcome",
			},
			[]string{"outcome"},
		),
		AuthorizationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authorizations_total",
				Help:      "Total number of protected requests by the state they ended in",
			},
			[]string{"state"},
		),

		UsersCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "users_created_total",
				Help:      "Total number of created accounts",
			},
		),
		UsersDeletedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "users_deleted_total",
				Help:      "Total number of deleted accounts",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginAttemptsTotal,
		m.AuthorizationsTotal,
		m.UsersCreatedTotal,
		m.UsersDeletedTotal,
	)

	return m
}

// RegisterDBStats exports the connection pool statistics of db.
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	if err := m.registry.Register(collectors.NewDBStatsCollector(db, dbName)); err != nil {
		return fmt.Errorf("error registering db stats collector: %w", err)
	}
	return nil
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
