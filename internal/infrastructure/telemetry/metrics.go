package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/taller-inventario/internal/application/sales"
)

var _ sales.MetricsRecorder = (*Metrics)(nil)

// Metrics colectores de la aplicación sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	salesRecorded   prometheus.Counter
	salesConflicts  prometheus.Counter
	salesReversed   prometheus.Counter
	reversalMissing prometheus.Counter
	unitOfWork      *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics registra los colectores (más los de Go y del proceso).
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,

		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Ventas registradas con éxito.",
		}),
		salesConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_stock_conflicts_total",
			Help:      "Ventas rechazadas por stock insuficiente o producto inexistente.",
		}),
		salesReversed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_reversed_total",
			Help:      "Ventas eliminadas con reposición de stock.",
		}),
		reversalMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_reversal_item_missing_total",
			Help:      "Ventas eliminadas cuyo producto ya no existía (sin reposición).",
		}),
		unitOfWork: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stock_unit_of_work_seconds",
			Help:      "Duración de las transacciones del motor de stock.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP por ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de requests HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.salesRecorded, m.salesConflicts, m.salesReversed, m.reversalMissing,
		m.unitOfWork, m.httpRequests, m.httpDuration,
	)
	return m
}

func (m *Metrics) SaleRecorded()        { m.salesRecorded.Inc() }
func (m *Metrics) SaleConflict()        { m.salesConflicts.Inc() }
func (m *Metrics) SaleReversed()        { m.salesReversed.Inc() }
func (m *Metrics) ReversalItemMissing() { m.reversalMissing.Inc() }

func (m *Metrics) ObserveUnitOfWork(op string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.unitOfWork.WithLabelValues(op, result).Observe(elapsed.Seconds())
}

// ObserveHTTP registra un request terminado. route es el patrón (/api/ventas/:id), no la URL.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests o colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
