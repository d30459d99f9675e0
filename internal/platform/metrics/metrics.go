package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "patientor"

type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	DispatchesTotal *prometheus.CounterVec
	PatientsKnown   prometheus.Gauge
	DiagnosesKnown  prometheus.Gauge
}

// NewCollector registers every metric on a fresh registry together with the
// Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of viewer HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Viewer HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight viewer HTTP requests.",
		}),

		UpstreamRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total calls to the patient service by operation and status code. Status 0 means no response.",
		}, []string{"op", "status"}),

		UpstreamRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Patient service call latency distribution.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"op"}),

		DispatchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "dispatches_total",
			Help:      "Total actions dispatched to the state store by action type.",
		}, []string{"action"}),

		PatientsKnown: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "patients",
			Help:      "Number of patients in the state store.",
		}),

		DiagnosesKnown: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "diagnoses",
			Help:      "Number of diagnoses in the state store.",
		}),
	}
}

// ObserveUpstream matches apiclient.Observer.
func (c *Collector) ObserveUpstream(op string, status int, d time.Duration) {
	c.UpstreamRequestsTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
	c.UpstreamRequestDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveDispatch counts one action and records the store sizes after it.
func (c *Collector) ObserveDispatch(action string, patients, diagnoses int) {
	c.DispatchesTotal.WithLabelValues(action).Inc()
	c.PatientsKnown.Set(float64(patients))
	c.DiagnosesKnown.Set(float64(diagnoses))
}

// Middleware records request count, latency and in-flight requests. The
// route label is the registered path pattern, not the raw URL.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			c.InFlightGauge.Inc()
			defer c.InFlightGauge.Dec()

			start := time.Now()
			err := next(ec)

			status := ec.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil && !ec.Response().Committed {
				status = http.StatusInternalServerError
			}
			route := ec.Path()
			if route == "" {
				route = "unmatched"
			}
			labels := []string{ec.Request().Method, route, strconv.Itoa(status)}
			c.RequestsTotal.WithLabelValues(labels...).Inc()
			c.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }
