package sim

import (
	"fmt"
	"math/rand"
)

// Utilization model names accepted by CostConfig.UtilizationModel.
const (
	UtilizationModelSynthetic  = "synthetic"
	UtilizationModelHistorical = "historical"
)

// ValidUtilizationModels is the set of recognized utilization model names.
// Empty string defaults to synthetic.
var ValidUtilizationModels = map[string]bool{"": true, UtilizationModelSynthetic: true, UtilizationModelHistorical: true}

// UtilizationEstimator yields a load indicator for a node.
// Implementations must return values in [0,1].
type UtilizationEstimator interface {
	Estimate(id NodeID) float64
}

// LoadObserver accepts measured node utilization.
// Implemented by estimators that learn from real load.
type LoadObserver interface {
	Observe(id NodeID, utilization float64)
}

// SyntheticUtilization samples uniformly from [Min, Max] on every call.
// It does not track real load: the learned policy therefore cannot react to
// congestion when this model is used.
type SyntheticUtilization struct {
	Min float64
	Max float64
	rng *rand.Rand
}

// NewSyntheticUtilization creates a synthetic estimator drawing from rng.
func NewSyntheticUtilization(min, max float64, rng *rand.Rand) *SyntheticUtilization {
	return &SyntheticUtilization{Min: min, Max: max, rng: rng}
}

// Estimate implements UtilizationEstimator.
func (s *SyntheticUtilization) Estimate(_ NodeID) float64 {
	return clampUnit(s.Min + s.rng.Float64()*(s.Max-s.Min))
}

// HistoricalLoad tracks an exponentially weighted moving average of observed
// utilization per node. Unobserved nodes report Prior.
type HistoricalLoad struct {
	Weight float64 // weight of the newest observation, in (0,1]
	Prior  float64
	avg    map[NodeID]float64
}

// NewHistoricalLoad creates an empty tracker.
func NewHistoricalLoad(weight, prior float64) *HistoricalLoad {
	return &HistoricalLoad{Weight: weight, Prior: clampUnit(prior), avg: make(map[NodeID]float64)}
}

// Observe folds a measured utilization into the node's average.
// Out-of-range measurements are clamped, not rejected.
func (h *HistoricalLoad) Observe(id NodeID, utilization float64) {
	u := clampUnit(utilization)
	prev, ok := h.avg[id]
	if !ok {
		h.avg[id] = u
		return
	}
	h.avg[id] = prev + h.Weight*(u-prev)
}

// Estimate implements UtilizationEstimator.
func (h *HistoricalLoad) Estimate(id NodeID) float64 {
	if v, ok := h.avg[id]; ok {
		return v
	}
	return h.Prior
}

// NewUtilizationEstimator creates the estimator named by cfg.UtilizationModel.
// The synthetic model draws from the SubsystemUtilization stream of rng.
// Panics on unrecognized names; Config.Validate rejects them first.
func NewUtilizationEstimator(cfg CostConfig, rng *PartitionedRNG) UtilizationEstimator {
	switch cfg.UtilizationModel {
	case "", UtilizationModelSynthetic:
		return NewSyntheticUtilization(cfg.UtilizationMin, cfg.UtilizationMax, rng.ForSubsystem(SubsystemUtilization))
	case UtilizationModelHistorical:
		return NewHistoricalLoad(cfg.HistoryWeight, cfg.HistoryPrior)
	default:
		panic(fmt.Sprintf("unknown utilization model %q", cfg.UtilizationModel))
	}
}

// clampUnit clamps v to [0,1]. NaN maps to 0.
func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}
