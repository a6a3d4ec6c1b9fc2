package mockhttp

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Compile-time interface check.
var _ prometheus.Collector = (*Collector)(nil)

// Collector exports the size of a Context's registry as Prometheus gauges.
// Every metric carries a "context" label with the Context's name.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(mockhttp.NewCollector(ctx))
type Collector struct {
	ctx *Context

	urls       *prometheus.Desc
	matchers   *prometheus.Desc
	requests   *prometheus.Desc
	defaultSet *prometheus.Desc
}

// NewCollector creates a Collector for ctx.
func NewCollector(ctx *Context) *Collector {
	labels := prometheus.Labels{"context": ctx.cfg.Name}
	return &Collector{
		ctx: ctx,
		urls: prometheus.NewDesc(
			"mockhttp_registered_urls",
			"Number of exact-URL registrations.",
			nil, labels,
		),
		matchers: prometheus.NewDesc(
			"mockhttp_registered_matchers",
			"Number of predicate registrations.",
			nil, labels,
		),
		requests: prometheus.NewDesc(
			"mockhttp_recorded_requests",
			"Number of requests in the request log.",
			nil, labels,
		),
		defaultSet: prometheus.NewDesc(
			"mockhttp_default_response_set",
			"1 if a default response is set, 0 otherwise.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.urls
	ch <- c.matchers
	ch <- c.requests
	ch <- c.defaultSet
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.ctx.stats()

	var defaultSet float64
	if s.defaultSet {
		defaultSet = 1
	}

	ch <- prometheus.MustNewConstMetric(c.urls, prometheus.GaugeValue, float64(s.urls))
	ch <- prometheus.MustNewConstMetric(c.matchers, prometheus.GaugeValue, float64(s.matchers))
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.GaugeValue, float64(s.requests))
	ch <- prometheus.MustNewConstMetric(c.defaultSet, prometheus.GaugeValue, defaultSet)
}
