// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/docgen-api/internal/application/ports"
)

var _ ports.DocumentMetrics = (*Metrics)(nil)

// Metrics agrupa los colectores HTTP y de documentos registrados en un Registerer.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	documents       *prometheus.CounterVec
}

// NewMetrics crea y registra los colectores. Falla si ya estaban registrados en reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docgen_documents_generated_total",
				Help: "Total number of documents rendered, by type and format.",
			},
			[]string{"type", "format"},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration, m.documents} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.requestCount.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// DocumentGenerated implementa ports.DocumentMetrics.
func (m *Metrics) DocumentGenerated(docType, format string) {
	m.documents.WithLabelValues(docType, format).Inc()
}

// RequestCount devuelve el contador de peticiones; lo usan los tests del middleware.
func (m *Metrics) RequestCount() *prometheus.CounterVec { return m.requestCount }

// Documents devuelve el contador de documentos generados.
func (m *Metrics) Documents() *prometheus.CounterVec { return m.documents }
