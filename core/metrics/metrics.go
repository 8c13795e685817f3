// Package metrics exposes Prometheus collectors for bot traffic and navigation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chroniclebot"

// Collector groups the bot's collectors on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	updates     *prometheus.CounterVec
	screens     *prometheus.CounterVec
	selections  *prometheus.CounterVec
	messages    *prometheus.CounterVec
	handlers    *prometheus.HistogramVec
	rateLimited prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Telegram updates received, by kind",
		}, []string{"kind"}),
		screens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screens_rendered_total",
			Help:      "Screens rendered, by screen kind",
		}, []string{"screen"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Handled selections, by outcome (ok, noop, unavailable, fail)",
		}, []string{"outcome"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages sent or edited, by keyboard presence",
		}, []string{"kb"}),
		handlers: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Handler latency, by handler and status",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"handler", "status"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Updates dropped by the rate limiter",
		}),
	}
	c.registry.MustRegister(
		c.updates,
		c.screens,
		c.selections,
		c.messages,
		c.handlers,
		c.rateLimited,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveUpdate counts an incoming update of the given kind.
func (c *Collector) ObserveUpdate(kind string) {
	if c == nil {
		return
	}
	c.updates.WithLabelValues(kind).Inc()
}

// ObserveScreen counts a rendered screen.
func (c *Collector) ObserveScreen(screen string) {
	if c == nil {
		return
	}
	c.screens.WithLabelValues(screen).Inc()
}

// ObserveSelection counts a handled selection by outcome.
func (c *Collector) ObserveSelection(outcome string) {
	if c == nil {
		return
	}
	c.selections.WithLabelValues(outcome).Inc()
}

// ObserveMessage counts an outbound message.
func (c *Collector) ObserveMessage(withKeyboard bool) {
	if c == nil {
		return
	}
	kb := "false"
	if withKeyboard {
		kb = "true"
	}
	c.messages.WithLabelValues(kb).Inc()
}

// ObserveHandler records handler latency.
func (c *Collector) ObserveHandler(handler, status string, took time.Duration) {
	if c == nil {
		return
	}
	c.handlers.WithLabelValues(handler, status).Observe(took.Seconds())
}

// ObserveRateLimited counts an update dropped by the rate limiter.
func (c *Collector) ObserveRateLimited() {
	if c == nil {
		return
	}
	c.rateLimited.Inc()
}
