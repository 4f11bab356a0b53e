// Package allocmetrics exposes the storage accounting of a pagedarray.Budget
// as prometheus metrics.
package allocmetrics

import (
	"github.com/forestrie/go-pagedarray/pagedarray"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "budget"

// Collector reads the budget on each scrape, so it never lags the arrays
// accounted against it.
type Collector struct {
	budget   *pagedarray.Budget
	inUse    *prometheus.Desc
	peak     *prometheus.Desc
	limit    *prometheus.Desc
	failures *prometheus.Desc
}

func NewCollector(namespace string, constLabels prometheus.Labels, b *pagedarray.Budget) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, name), help, nil, constLabels)
	}
	return &Collector{
		budget:   b,
		inUse:    desc("bytes_in_use", "Bytes of node storage currently reserved."),
		peak:     desc("bytes_peak", "Highest number of bytes reserved at once."),
		limit:    desc("bytes_limit", "Reservation limit in bytes, 0 when unbounded."),
		failures: desc("refused_total", "Reservations refused because they would exceed the limit."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.peak
	ch <- c.limit
	ch <- c.failures
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(c.budget.InUse()))
	ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(c.budget.Peak()))
	ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, float64(c.budget.Limit()))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(c.budget.Failures()))
}
