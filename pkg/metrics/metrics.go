package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes the service counters, histograms and gauges.
// A nil *Collector is valid and records nothing.
type Collector struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	socketConnections  prometheus.Gauge
	outboxPublished    *prometheus.CounterVec
	blockedDayOutcomes *prometheus.CounterVec
	webhookEvents      *prometheus.CounterVec
	cleanupDeleted     *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_agenda",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic_agenda",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"}),
		socketConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinic_agenda",
			Subsystem: "realtime",
			Name:      "socket_connections",
			Help:      "Current number of connected sockets.",
		}),
		outboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_agenda",
			Subsystem: "realtime",
			Name:      "outbox_published_total",
			Help:      "Outbox events published to socket rooms by event type.",
		}, []string{"event_type"}),
		blockedDayOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_agenda",
			Subsystem: "agenda",
			Name:      "blocked_day_requests_total",
			Help:      "Blocked day creations by outcome (created, conflict, overridden).",
		}, []string{"outcome"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_agenda",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Stripe webhook events by type and result.",
		}, []string{"event_type", "result"}),
		cleanupDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_agenda",
			Subsystem: "cleanup",
			Name:      "rows_total",
			Help:      "Rows removed or expired by the cleanup job.",
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.socketConnections,
		c.outboxPublished,
		c.blockedDayOutcomes,
		c.webhookEvents,
		c.cleanupDeleted,
	)
	return c
}

func (c *Collector) ObserveRequest(method, route, status string, seconds float64) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(method, route, status).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (c *Collector) SocketConnected() {
	if c == nil {
		return
	}
	c.socketConnections.Inc()
}

func (c *Collector) SocketDisconnected() {
	if c == nil {
		return
	}
	c.socketConnections.Dec()
}

func (c *Collector) OutboxPublished(eventType string) {
	if c == nil {
		return
	}
	c.outboxPublished.WithLabelValues(eventType).Inc()
}

func (c *Collector) BlockedDayOutcome(outcome string) {
	if c == nil {
		return
	}
	c.blockedDayOutcomes.WithLabelValues(outcome).Inc()
}

func (c *Collector) WebhookEvent(eventType, result string) {
	if c == nil {
		return
	}
	c.webhookEvents.WithLabelValues(eventType, result).Inc()
}

func (c *Collector) CleanupRows(kind string, n int64) {
	if c == nil || n <= 0 {
		return
	}
	c.cleanupDeleted.WithLabelValues(kind).Add(float64(n))
}

// Handler serves the metrics of the given gatherer, or the default registry when nil.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
