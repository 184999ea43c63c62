// Package prommetrics exports catalog metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, err := prommetrics.NewCollector(reg, "runbits")
//	cat := catalog.New(store, catalog.WithMetricsCollector(c))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/runbits/catalog"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	statusSkipped = "skipped"
	statusCached  = "cached"
)

var _ catalog.MetricsCollector = (*Collector)(nil)

// Collector implements catalog.MetricsCollector with Prometheus vectors.
type Collector struct {
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
	bytes   *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "operations_total",
			Help:      "Catalog operations by op and status.",
		}, []string{"op", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "operation_duration_seconds",
			Help:      "Latency of catalog operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "transferred_bytes_total",
			Help:      "Framed bytes moved to or from the blob store.",
		}, []string{"op"}),
	}

	for _, m := range []prometheus.Collector{c.ops, c.latency, c.bytes} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCollector is like NewCollector but panics on registration errors.
func MustNewCollector(reg prometheus.Registerer, namespace string) *Collector {
	c, err := NewCollector(reg, namespace)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordSave implements catalog.MetricsCollector.
func (c *Collector) RecordSave(bytes int, d time.Duration, err error) {
	status := statusOf(err)
	if err == nil && bytes == 0 {
		status = statusSkipped
	}
	c.record("save", status, bytes, d)
}

// RecordLoad implements catalog.MetricsCollector.
func (c *Collector) RecordLoad(bytes int, cached bool, d time.Duration, err error) {
	status := statusOf(err)
	if err == nil && cached {
		status = statusCached
	}
	c.record("load", status, bytes, d)
}

// RecordDelete implements catalog.MetricsCollector.
func (c *Collector) RecordDelete(d time.Duration, err error) {
	c.record("delete", statusOf(err), 0, d)
}

func (c *Collector) record(op, status string, bytes int, d time.Duration) {
	c.ops.WithLabelValues(op, status).Inc()
	c.latency.WithLabelValues(op).Observe(d.Seconds())
	if bytes > 0 {
		c.bytes.WithLabelValues(op).Add(float64(bytes))
	}
}

func statusOf(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}
