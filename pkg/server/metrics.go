package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors of a Server.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "raptor").
	Namespace string

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors.
	// Default: a new registry per server.
	Registry *prometheus.Registry
}

// metrics holds the Prometheus collectors of a Server.
type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	wsClients      prometheus.Gauge
	reloadsTotal   prometheus.Counter
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "raptor",
		Buckets:   prometheus.DefBuckets,
	}
}

func newMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "renders_total",
			Help:      "Total number of documents rendered",
		}, []string{"source", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "render_duration_seconds",
			Help:      "Document build and render duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"source"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "render_errors_total",
			Help:      "Total number of render errors by error code",
		}, []string{"code"}),

		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "websocket_clients",
			Help:      "Number of connected WebSocket clients",
		}),

		reloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "reloads_total",
			Help:      "Total number of reload notifications broadcast",
		}),
	}
}

// observe records one render from source. code is empty on success.
func (m *metrics) observe(source string, start time.Time, code string) {
	status := "ok"
	if code != "" {
		status = "error"
		m.renderErrors.WithLabelValues(code).Inc()
	}
	m.rendersTotal.WithLabelValues(source, status).Inc()
	m.renderDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}
