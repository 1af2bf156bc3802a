package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric exported on /metrics
var Registry = prometheus.NewRegistry()

var (
	requestsTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "hrmis_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrmis_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	requestsInFlight = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "hrmis_http_requests_in_flight",
		Help: "Number of HTTP requests being served",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// MetricsHandler serves the registry in the Prometheus text format
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
