// Package metrics holds the Prometheus collectors for cart planning.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	resolutions    *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	cache          *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealcart",
			Name:      "resolutions_total",
			Help:      "Purchase quantity resolutions by outcome and sale basis.",
		}, []string{"status", "sold_by"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealcart",
			Name:      "product_lookups_total",
			Help:      "Product source calls by operation and result.",
		}, []string{"op", "result"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mealcart",
			Name:      "product_lookup_duration_seconds",
			Help:      "Product source call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealcart",
			Name:      "product_cache_requests_total",
			Help:      "Product cache reads by result.",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(m.resolutions, m.lookups, m.lookupDuration, m.cache)
	return m
}

// ObserveResolution counts one resolver outcome.
func (m *Metrics) ObserveResolution(status, soldBy string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(status, soldBy).Inc()
}

// ObserveLookup records one product source call.
func (m *Metrics) ObserveLookup(op, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(op, result).Inc()
	m.lookupDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveCache counts one cache read.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

// WriteTextfile writes the current values in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
