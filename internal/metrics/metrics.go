// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers counters for the auth flow and the client-token cache.
type Collector struct {
	registry *prometheus.Registry

	logins       prometheus.Counter
	callbacks    *prometheus.CounterVec
	tokenRefresh *prometheus.CounterVec
	httpStatus   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on a fresh
// registry, so tests can construct independent instances.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spotify_backend_logins_total",
			Help: "Login redirects issued.",
		}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotify_backend_callbacks_total",
			Help: "OAuth callback attempts by outcome.",
		}, []string{"outcome"}),
		tokenRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotify_backend_client_token_refresh_total",
			Help: "Client-credentials token refreshes by outcome.",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotify_backend_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
	}

	c.registry.MustRegister(c.logins, c.callbacks, c.tokenRefresh, c.httpStatus)
	return c
}

// RecordLogin records a login redirect.
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordCallback records a callback attempt. Outcome is one of "success",
// "provider_error", "invalid_state", "missing_code", "exchange_failed",
// "profile_failed".
func (c *Collector) RecordCallback(outcome string) {
	c.callbacks.WithLabelValues(outcome).Inc()
}

// RecordClientTokenRefresh records a client-credentials refresh attempt.
func (c *Collector) RecordClientTokenRefresh(outcome string) {
	c.tokenRefresh.WithLabelValues(outcome).Inc()
}

// RecordHTTPStatus records a response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
