// Package metrics expone métricas Prometheus del taller: HTTP y eventos de negocio confirmados.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/ports"
)

var _ ports.BusinessMetrics = (*Metrics)(nil)

// Metrics agrupa los colectores sobre un registro propio (no el global).
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	stockMovementsTotal *prometheus.CounterVec
	stockUnitsTotal     *prometheus.CounterVec
	salesTotal          prometheus.Counter
	salesAmountTotal    prometheus.Counter
	salesCanceledTotal  prometheus.Counter
	repairStatusTotal   *prometheus.CounterVec
	cashSessionsOpen    prometheus.Gauge
}

// New crea y registra los colectores.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		stockMovementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taller_stock_movements_total",
				Help: "Movimientos de inventario confirmados por tipo",
			},
			[]string{"type"},
		),
		stockUnitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taller_stock_units_total",
				Help: "Unidades movidas por tipo de movimiento",
			},
			[]string{"type"},
		),
		salesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taller_sales_total",
			Help: "Ventas confirmadas",
		}),
		salesAmountTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taller_sales_amount_total",
			Help: "Importe total vendido",
		}),
		salesCanceledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taller_sales_canceled_total",
			Help: "Ventas anuladas",
		}),
		repairStatusTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taller_repair_status_changes_total",
				Help: "Cambios de estado de reparaciones por estado destino",
			},
			[]string{"status"},
		),
		cashSessionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "taller_cash_sessions_open",
			Help: "Cajas abiertas desde el arranque del proceso",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal, m.httpRequestDuration,
		m.stockMovementsTotal, m.stockUnitsTotal,
		m.salesTotal, m.salesAmountTotal, m.salesCanceledTotal,
		m.repairStatusTotal, m.cashSessionsOpen,
	)
	return m
}

// Handler sirve el endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry expone el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest registra una petición HTTP terminada. path es la ruta registrada, no la URL.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "undefined"
	}
	m.httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	m.httpRequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

func (m *Metrics) MovementApplied(movementType string, quantity int) {
	m.stockMovementsTotal.WithLabelValues(movementType).Inc()
	m.stockUnitsTotal.WithLabelValues(movementType).Add(float64(quantity))
}

func (m *Metrics) SaleCreated(total decimal.Decimal) {
	m.salesTotal.Inc()
	m.salesAmountTotal.Add(total.InexactFloat64())
}

func (m *Metrics) SaleCanceled() { m.salesCanceledTotal.Inc() }

func (m *Metrics) RepairStatusChanged(status string) {
	m.repairStatusTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) CashSessionOpened() { m.cashSessionsOpen.Inc() }
func (m *Metrics) CashSessionClosed() { m.cashSessionsOpen.Dec() }

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
