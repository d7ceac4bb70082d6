// Package metrics exposes pool occupancy and score as Prometheus metrics.
//
// Pool exhaustion is expected backpressure, not an error; the exhausted
// counter exists so capacity can be tuned from real play sessions.
package metrics

import (
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/l1jgo/arcade/internal/core/pool"
)

// Collector owns a private registry so several games (or tests) never clash
// on the default one.
type Collector struct {
	registry      *prometheus.Registry
	poolActive    *prometheus.GaugeVec
	poolCapacity  *prometheus.GaugeVec
	poolExhausted *prometheus.CounterVec
	poolAcquired  *prometheus.CounterVec
	score         prometheus.Gauge
	frames        prometheus.Counter

	// last seen cumulative counts, to turn snapshots into counter deltas
	lastExhausted map[string]uint64
	lastAcquired  map[string]uint64
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		poolActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "arcade_pool_active",
			Help: "Entities currently active in the pool",
		}, []string{"pool"}),
		poolCapacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "arcade_pool_capacity",
			Help: "Fixed pool capacity",
		}, []string{"pool"}),
		poolExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_pool_exhausted_total",
			Help: "Acquisitions refused because every entity was active",
		}, []string{"pool"}),
		poolAcquired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_pool_acquired_total",
			Help: "Successful acquisitions",
		}, []string{"pool"}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_score",
			Help: "Current score",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arcade_frames_total",
			Help: "Frames simulated",
		}),
		lastExhausted: make(map[string]uint64),
		lastAcquired:  make(map[string]uint64),
	}
	c.registry.MustRegister(c.poolActive, c.poolCapacity, c.poolExhausted, c.poolAcquired, c.score, c.frames)
	return c
}

// ObservePool records one pool snapshot.
func (c *Collector) ObservePool(name string, st pool.Stats) {
	c.poolActive.WithLabelValues(name).Set(float64(st.Active))
	c.poolCapacity.WithLabelValues(name).Set(float64(st.Capacity))
	if d := delta(c.lastExhausted[name], st.Exhausted); d > 0 {
		c.poolExhausted.WithLabelValues(name).Add(float64(d))
	}
	if d := delta(c.lastAcquired[name], st.Acquired); d > 0 {
		c.poolAcquired.WithLabelValues(name).Add(float64(d))
	}
	c.lastExhausted[name] = st.Exhausted
	c.lastAcquired[name] = st.Acquired
}

// delta is how much a pool counter grew since the last snapshot. A smaller
// value means the pool was reset, so everything counted since then is new.
func delta(last, now uint64) uint64 {
	if now < last {
		return now
	}
	return now - last
}

// ObserveFrame records the score after a frame.
func (c *Collector) ObserveFrame(score int) {
	c.score.Set(float64(score))
	c.frames.Inc()
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// WriteText gathers the registry once and writes it in the text exposition
// format, for headless runs with nothing scraping them.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
