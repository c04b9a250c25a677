// Package vecprom exports vector and arena statistics to Prometheus.
//
// Vectors are not goroutine-safe, so the collector never reads a live
// vector. The owner pushes snapshots with ObserveVector and ObserveRegion
// and a scrape reports the latest snapshot of each name.
package vecprom

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/vector"
	"github.com/pavanmanishd/vector/arena"
)

// Collector is a prometheus.Collector over pushed snapshots.
type Collector struct {
	mu      sync.Mutex
	vectors map[string]vector.Metrics
	regions map[string]arena.RegionMetrics

	vecLen          *prometheus.Desc
	vecCap          *prometheus.Desc
	vecBytesInUse   *prometheus.Desc
	vecBytesCap     *prometheus.Desc
	vecUtilization  *prometheus.Desc
	vecGrows        *prometheus.Desc
	vecGrowFailures *prometheus.Desc
	vecShrinks      *prometheus.Desc

	regInUse       *prometheus.Desc
	regCapacity    *prometheus.Desc
	regChunks      *prometheus.Desc
	regUtilization *prometheus.Desc
	regReallocs    *prometheus.Desc
}

// NewCollector creates a collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	vec := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "vector", name), help, []string{"vector"}, nil)
	}
	reg := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", name), help, append([]string{"region"}, labels...), nil)
	}
	return &Collector{
		vectors: make(map[string]vector.Metrics),
		regions: make(map[string]arena.RegionMetrics),

		vecLen:          vec("len", "Number of live elements"),
		vecCap:          vec("capacity", "Number of allocated slots"),
		vecBytesInUse:   vec("bytes_in_use", "Bytes held by live elements"),
		vecBytesCap:     vec("bytes_capacity", "Bytes of the allocated buffer"),
		vecUtilization:  vec("utilization_ratio", "Live elements divided by slots"),
		vecGrows:        vec("grows_total", "Successful capacity increases"),
		vecGrowFailures: vec("grow_failures_total", "Allocation failures"),
		vecShrinks:      vec("shrinks_total", "Successful capacity decreases"),

		regInUse:       reg("bytes_in_use", "Bytes handed out since the last reset"),
		regCapacity:    reg("bytes_capacity", "Total bytes of all chunks"),
		regChunks:      reg("chunks", "Number of chunks"),
		regUtilization: reg("utilization_ratio", "Bytes in use divided by capacity"),
		regReallocs:    reg("reallocs_total", "Reallocations by outcome", "kind"),
	}
}

// ObserveVector stores the latest snapshot for the named vector.
func (c *Collector) ObserveVector(name string, m vector.Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[name] = m
}

// ObserveRegion stores the latest snapshot for the named region.
func (c *Collector) ObserveRegion(name string, m arena.RegionMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regions[name] = m
}

// Forget drops the snapshots stored under name.
func (c *Collector) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.vectors, name)
	delete(c.regions, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.vecLen, c.vecCap, c.vecBytesInUse, c.vecBytesCap, c.vecUtilization,
		c.vecGrows, c.vecGrowFailures, c.vecShrinks,
		c.regInUse, c.regCapacity, c.regChunks, c.regUtilization, c.regReallocs,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range sortedKeys(c.vectors) {
		m := c.vectors[name]
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, name)
		}
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}
		gauge(c.vecLen, float64(m.Len))
		gauge(c.vecCap, float64(m.Cap))
		gauge(c.vecBytesInUse, float64(m.BytesInUse))
		gauge(c.vecBytesCap, float64(m.BytesCapacity))
		gauge(c.vecUtilization, m.Utilization)
		counter(c.vecGrows, m.Grows)
		counter(c.vecGrowFailures, m.GrowFailures)
		counter(c.vecShrinks, m.Shrinks)
	}

	for _, name := range sortedKeys(c.regions) {
		m := c.regions[name]
		ch <- prometheus.MustNewConstMetric(c.regInUse, prometheus.GaugeValue, float64(m.SizeInUse), name)
		ch <- prometheus.MustNewConstMetric(c.regCapacity, prometheus.GaugeValue, float64(m.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.regChunks, prometheus.GaugeValue, float64(m.NumChunks), name)
		ch <- prometheus.MustNewConstMetric(c.regUtilization, prometheus.GaugeValue, m.Utilization, name)
		ch <- prometheus.MustNewConstMetric(c.regReallocs, prometheus.CounterValue, float64(m.InPlaceReallocs), name, "in_place")
		ch <- prometheus.MustNewConstMetric(c.regReallocs, prometheus.CounterValue, float64(m.MovedReallocs), name, "moved")
	}
}

// NewRegistry returns a registry with c registered.
func NewRegistry(c *Collector) *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(c)
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
