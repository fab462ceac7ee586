// Package metrics exposes HTTP and order lifecycle metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
)

const namespace = "cozepkg"

var _ usecases.OrderRecorder = (*Collector)(nil)

type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ordersCreated    *prometheus.CounterVec
	ordersPaid       *prometheus.CounterVec
	paidAmountFen    *prometheus.CounterVec
	refundsRequested prometheus.Counter
}

// NewCollector registers every metric on a private registry together with
// the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ordersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_created_total",
				Help:      "Package orders created, by payment method",
			},
			[]string{"method"},
		),
		ordersPaid: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_paid_total",
				Help:      "Package orders settled, by payment method",
			},
			[]string{"method"},
		),
		paidAmountFen: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_paid_amount_fen_total",
				Help:      "Settled amount in fen, by payment method",
			},
			[]string{"method"},
		),
		refundsRequested: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refunds_requested_total",
				Help:      "Refund requests accepted for review",
			},
		),
	}
}

// ObserveHTTP records one finished request. route is the matched pattern,
// not the raw path.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) OrderCreated(method string) {
	c.ordersCreated.WithLabelValues(method).Inc()
}

func (c *Collector) OrderPaid(method string, amountFen int64) {
	c.ordersPaid.WithLabelValues(method).Inc()
	if amountFen > 0 {
		c.paidAmountFen.WithLabelValues(method).Add(float64(amountFen))
	}
}

func (c *Collector) RefundRequested() {
	c.refundsRequested.Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }
