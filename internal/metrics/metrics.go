package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// Metrics collects Prometheus metrics for the API.
type Metrics struct {
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	products        prometheus.Gauge
	lowStock        prometheus.Gauge
	outOfStock      prometheus.Gauge
	units           prometheus.Gauge
}

// New initializes a registry with the HTTP and inventory metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	products := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stock_products_total",
		Help: "Products in the catalog at the last stats computation.",
	})
	lowStock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stock_low_stock_products",
		Help: "Products below their minimum quantity.",
	})
	outOfStock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stock_out_of_stock_products",
		Help: "Products with zero units.",
	})
	units := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stock_units_total",
		Help: "Sum of units across all products.",
	})
	registry.MustRegister(requests, duration, products, lowStock, outOfStock, units)
	return &Metrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		products:        products,
		lowStock:        lowStock,
		outOfStock:      outOfStock,
		units:           units,
	}
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records one counter and histogram sample per request. Handler
// errors are rendered here so the recorded status is the one sent.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m == nil {
			return next
		}
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unknown"
			}
			status := strconv.Itoa(c.Response().Status)
			m.requestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()
			m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ObserveStats publishes the latest inventory summary.
func (m *Metrics) ObserveStats(stats service.Stats) {
	if m == nil {
		return
	}
	m.products.Set(float64(stats.TotalProducts))
	m.lowStock.Set(float64(stats.LowStockCount))
	m.outOfStock.Set(float64(stats.OutOfStockCount))
	m.units.Set(float64(stats.TotalUnits))
}
