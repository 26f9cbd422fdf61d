package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Outcome labels for geocoding requests.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds every collector the service exports, registered on a
// private registry so tests can build as many instances as they like.
type Metrics struct {
	Registry *prometheus.Registry

	GeocodeRequests      *prometheus.CounterVec
	GeocodeBatchDuration *prometheus.HistogramVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	UnreadNotifications  *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeBatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_batch_duration_seconds",
			Help:      "Wall time of a geocoding batch, delays included.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"provider"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		UnreadNotifications: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unread_notifications",
			Help:      "Unread notifications per role.",
		}, []string{"role"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GeocodeRequests,
		m.GeocodeBatchDuration,
		m.HTTPRequests,
		m.HTTPDuration,
		m.UnreadNotifications,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveGeocode counts one lookup. Safe on a nil receiver so callers
// without metrics need no guard.
func (m *Metrics) ObserveGeocode(provider string, success bool) {
	if m == nil {
		return
	}
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	m.GeocodeRequests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveGeocodeBatch(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.GeocodeBatchDuration.WithLabelValues(provider).Observe(seconds)
}

func (m *Metrics) SetUnread(role string, count int) {
	if m == nil {
		return
	}
	m.UnreadNotifications.WithLabelValues(role).Set(float64(count))
}

func (m *Metrics) ObserveHTTP(route, method string, code int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(seconds)
}
