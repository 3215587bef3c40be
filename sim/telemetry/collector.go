// Package telemetry exports training progress as Prometheus metrics.
package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fogsim/fog-offload-sim/sim/trace"
)

const namespace = "fog_offload"

// Decision label values of the episodes counter.
const (
	DecisionExplore = "explore"
	DecisionExploit = "exploit"
)

// Collector records one training run into its own registry, so that
// repeated runs in the same process never collide on metric names.
type Collector struct {
	registry *prometheus.Registry

	episodes *prometheus.CounterVec
	epsilon  prometheus.Gauge
	qValue   *prometheus.GaugeVec
	reward   prometheus.Histogram
}

// NewCollector creates a collector backed by a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		episodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_total",
			Help:      "Training episodes completed, by decision kind",
		}, []string{"decision"}),
		epsilon: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "epsilon",
			Help:      "Exploration rate used by the most recent episode",
		}),
		qValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "q_value",
			Help:      "Current learned value per node",
		}, []string{"node"}),
		reward: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reward",
			Help:      "Per-episode reward",
			Buckets:   prometheus.LinearBuckets(-2, 0.1, 20),
		}),
	}
}

// ObserveEpisode updates all metrics from one episode record.
func (c *Collector) ObserveEpisode(rec trace.EpisodeRecord) {
	decision := DecisionExploit
	if rec.Explored {
		decision = DecisionExplore
	}
	c.episodes.WithLabelValues(decision).Inc()
	c.epsilon.Set(rec.Epsilon)
	c.qValue.WithLabelValues(strconv.Itoa(rec.NodeID)).Set(rec.QAfter)
	c.reward.Observe(rec.Reward)
}

// Registry returns the registry holding this collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, for pickup by a node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
