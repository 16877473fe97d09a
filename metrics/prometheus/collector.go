// Package prometheus exports rankdb read metrics to Prometheus.
//
//	c := prometheus.NewCollector("rankdb")
//	registry.MustRegister(c)
//	db, err := rankdb.Open(path, "hg38", rankdb.WithMetricsCollector(c))
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/rankdb"
)

// Collector implements rankdb.MetricsCollector and prometheus.Collector.
type Collector struct {
	reads         *prom.CounterVec
	readLatency   *prom.HistogramVec
	readColumns   *prom.CounterVec
	residentLoads *prom.CounterVec
	residentBytes *prom.GaugeVec
}

var (
	_ rankdb.MetricsCollector = (*Collector)(nil)
	_ prom.Collector          = (*Collector)(nil)
)

// NewCollector creates a collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		reads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reads_total",
			Help:      "Reads from ranking database files",
		}, []string{"database", "status"}),
		readLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "read_duration_seconds",
			Help:      "Latency of ranking database reads",
			Buckets:   prom.DefBuckets,
		}, []string{"database"}),
		readColumns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "read_columns_total",
			Help:      "Identifier columns decoded from ranking database files",
		}, []string{"database"}),
		residentLoads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "resident_loads_total",
			Help:      "Ranking tables materialized in memory",
		}, []string{"database", "status"}),
		residentBytes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "resident_bytes",
			Help:      "Size of the memory-resident ranking table",
		}, []string{"database"}),
	}
}

// RecordRead implements rankdb.MetricsCollector.
func (c *Collector) RecordRead(database string, columns, _ int, duration time.Duration, err error) {
	c.reads.WithLabelValues(database, status(err)).Inc()
	c.readLatency.WithLabelValues(database).Observe(duration.Seconds())
	if err == nil {
		c.readColumns.WithLabelValues(database).Add(float64(columns))
	}
}

// RecordResidentLoad implements rankdb.MetricsCollector.
func (c *Collector) RecordResidentLoad(database string, bytes int64, _ time.Duration, err error) {
	c.residentLoads.WithLabelValues(database, status(err)).Inc()
	if err == nil {
		c.residentBytes.WithLabelValues(database).Add(float64(bytes))
	}
}

// RecordResidentRelease implements rankdb.MetricsCollector.
func (c *Collector) RecordResidentRelease(database string, bytes int64) {
	c.residentBytes.WithLabelValues(database).Sub(float64(bytes))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prom.Desc) {
	c.reads.Describe(ch)
	c.readLatency.Describe(ch)
	c.readColumns.Describe(ch)
	c.residentLoads.Describe(ch)
	c.residentBytes.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prom.Metric) {
	c.reads.Collect(ch)
	c.readLatency.Collect(ch)
	c.readColumns.Collect(ch)
	c.residentLoads.Collect(ch)
	c.residentBytes.Collect(ch)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
