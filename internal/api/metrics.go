package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for the API surface.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	ResolvesTotal    *prometheus.CounterVec
	SessionsStarted  prometheus.Counter
	SessionsSettled  prometheus.Counter
	DerivationsTotal prometheus.Counter
}

// NewMetrics creates a metrics set on its own registry so tests can build
// servers without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fairsettle_http_requests_total",
			Help: "HTTP requests by route and status class.",
		}, []string{"route", "status"}),
		ResolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fairsettle_resolves_total",
			Help: "Game resolutions served, by game id.",
		}, []string{"game"}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fairsettle_sessions_started_total",
			Help: "Settlement sessions started.",
		}),
		SessionsSettled: factory.NewCounter(prometheus.CounterOpts{
			Name: "fairsettle_sessions_settled_total",
			Help: "Settlement sessions run to completion.",
		}),
		DerivationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fairsettle_derivations_total",
			Help: "Single derive calls served over HTTP.",
		}),
	}
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
