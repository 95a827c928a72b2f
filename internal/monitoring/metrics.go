package monitoring

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthcheck"

// Metrics owns a dedicated registry. All recording methods are safe on a nil receiver
// so components can be built without metrics in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpInFlight  prometheus.Gauge
	mealsLogged   *prometheus.CounterVec
	usersRegister prometheus.Counter
	reports       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, matched route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and matched route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		mealsLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meals_logged_total",
			Help:      "Meals written to the ledger by food type.",
		}, []string{"food_type"}),
		usersRegister: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Successful registrations.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "30-day reports generated, split by whether they were e-mailed.",
		}, []string{"emailed"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.httpInFlight,
		m.mealsLogged,
		m.usersRegister,
		m.reports,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency labelled by the matched route pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}

		startedAt := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		method := c.Method()
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(startedAt).Seconds())
		return err
	}
}

func (m *Metrics) MealLogged(foodType string) {
	if m == nil {
		return
	}
	m.mealsLogged.WithLabelValues(foodType).Inc()
}

func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.usersRegister.Inc()
}

func (m *Metrics) ReportGenerated(emailed bool) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(strconv.FormatBool(emailed)).Inc()
}
