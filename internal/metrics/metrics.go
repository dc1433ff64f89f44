// Package metrics exposes Prometheus metrics for retention and rollover.
//
// All metrics are registered on a private registry and labelled by target
// name:
//
//	rollclean_archives_removed_total
//	rollclean_archive_removal_failures_total
//	rollclean_directories_pruned_total
//	rollclean_bytes_reclaimed_total
//	rollclean_rollovers_total
//	rollclean_retention_window
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rollclean"

// Collector records retention and rollover metrics.
type Collector struct {
	registry *prometheus.Registry

	removed   *prometheus.CounterVec
	failures  *prometheus.CounterVec
	pruned    *prometheus.CounterVec
	reclaimed *prometheus.CounterVec
	rollovers *prometheus.CounterVec
	window    *prometheus.GaugeVec
}

// NewCollector creates a collector. If registry is nil a new one is created
// with the Go and process collectors attached.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	labels := []string{"target"}
	c := &Collector{
		registry: registry,
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archives_removed_total",
			Help:      "Archives deleted because they fell out of the retention window.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_removal_failures_total",
			Help:      "Failed archive or directory deletions.",
		}, labels),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directories_pruned_total",
			Help:      "Empty parent directories removed after an archive deletion.",
		}, labels),
		reclaimed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_reclaimed_total",
			Help:      "Bytes freed by archive deletions.",
		}, labels),
		rollovers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollovers_total",
			Help:      "Rollovers performed by rolling writers.",
		}, labels),
		window: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "retention_window",
			Help:      "Configured number of rollover periods to keep.",
		}, labels),
	}

	registry.MustRegister(c.removed, c.failures, c.pruned, c.reclaimed, c.rollovers, c.window)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ArchiveRemoved(target string, bytes int64) {
	c.removed.WithLabelValues(target).Inc()
	if bytes > 0 {
		c.reclaimed.WithLabelValues(target).Add(float64(bytes))
	}
}

func (c *Collector) RemovalFailed(target string) {
	c.failures.WithLabelValues(target).Inc()
}

func (c *Collector) DirectoryPruned(target string) {
	c.pruned.WithLabelValues(target).Inc()
}

func (c *Collector) RetentionWindow(target string, periods int) {
	c.window.WithLabelValues(target).Set(float64(periods))
}

func (c *Collector) Rollover(target string) {
	c.rollovers.WithLabelValues(target).Inc()
}

// Forget drops all series of a target that is no longer configured.
func (c *Collector) Forget(target string) {
	for _, v := range []*prometheus.CounterVec{c.removed, c.failures, c.pruned, c.reclaimed, c.rollovers} {
		v.DeleteLabelValues(target)
	}
	c.window.DeleteLabelValues(target)
}
