// Package metrics exports batch check results in Prometheus text format,
// for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nickromney/certcheck/internal/batch"
)

// Collectors holds the gauges for one export.
type Collectors struct {
	registry   *prometheus.Registry
	severity   *prometheus.GaugeVec
	mismatched *prometheus.GaugeVec
	expiry     *prometheus.GaugeVec
	lastRun    prometheus.Gauge
}

// New registers the certcheck gauges on a private registry.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		// Labels: source (file path or host:port)
		severity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "certcheck_severity",
				Help: "Check severity per source: 0=OK, 1=WARNING, 2=CRITICAL, 3=UNKNOWN",
			},
			[]string{"source"},
		),
		mismatched: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "certcheck_findings_mismatched",
				Help: "Number of certificate fields that did not match expectations",
			},
			[]string{"source"},
		),
		expiry: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "certcheck_expiry_timestamp_seconds",
				Help: "Certificate notAfter as a Unix timestamp",
			},
			[]string{"source"},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "certcheck_last_run_timestamp_seconds",
				Help: "Time the batch finished",
			},
		),
	}
	c.registry.MustRegister(c.severity, c.mismatched, c.expiry, c.lastRun)
	return c
}

// Record sets the gauges from batch items. Sources that failed to load only
// get a severity sample.
func (c *Collectors) Record(items []batch.Item, now time.Time) {
	for _, it := range items {
		name := it.Source.Name()
		c.severity.WithLabelValues(name).Set(float64(it.Result.Severity()))
		if it.Fields == nil {
			continue
		}
		c.mismatched.WithLabelValues(name).Set(float64(len(it.Result.Report.Mismatches())))
		c.expiry.WithLabelValues(name).Set(float64(it.Fields.NotAfter.Unix()))
	}
	c.lastRun.Set(float64(now.Unix()))
}

// Gatherer exposes the registry, e.g. for tests.
func (c *Collectors) Gatherer() prometheus.Gatherer { return c.registry }

// WriteTextfile atomically writes the current samples to path.
func (c *Collectors) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
