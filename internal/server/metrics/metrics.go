// Package metrics contains the Prometheus collectors of the API server.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics counts API requests and their outcome.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

// NewHTTPMetrics creates the collectors and registers them.
func NewHTTPMetrics(registry prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fitlog",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fitlog",
				Name:      "http_request_duration_seconds",
				Help:      "Time taken for HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fitlog",
				Name:      "http_request_errors_total",
				Help:      "Total number of failed HTTP requests by error class",
			},
			[]string{"path", "error_type"}, // validation, not_found, auth, conflict, busy, internal
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements the Collector interface
func (m *HTTPMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
	m.errorsTotal.Describe(ch)
}

// Collect implements the Collector interface
func (m *HTTPMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
	m.errorsTotal.Collect(ch)
}

// ObserveRequest records one finished request. path is the route pattern,
// not the raw URL, to keep label cardinality bounded.
func (m *HTTPMetrics) ObserveRequest(method, path string, status int, took time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(took.Seconds())
}

// ObserveError records the class of err.
func (m *HTTPMetrics) ObserveError(path string, err error) {
	m.errorsTotal.WithLabelValues(path, ErrorType(err)).Inc()
}

// ErrorType names the class of a service error for labelling.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return "validation"
	case errors.Is(err, common.ErrorNotFound):
		return "not_found"
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return "auth"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "conflict"
	case dbx.IsBusy(err):
		return "busy"
	default:
		return "internal"
	}
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewGoCollector())
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return r
}

// Handler exposes registry in the Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
