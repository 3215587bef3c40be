package sim

import "fmt"

// Config groups every tunable of the decision engine for one run.
// Use DefaultConfig() for the reference parameters.
type Config struct {
	Seed        int64             `yaml:"seed"`        // master seed for all RNG subsystems
	Learning    LearningConfig    `yaml:"learning"`    // episode budget and learning rate
	Exploration ExplorationConfig `yaml:"exploration"` // epsilon schedule
	Task        TaskConfig        `yaml:"task"`        // synthetic task ranges
	Cost        CostConfig        `yaml:"cost"`        // cost model constants
}

// LearningConfig groups training loop parameters.
type LearningConfig struct {
	Episodes     int     `yaml:"episodes"`      // number of training episodes (reference 200)
	LearningRate float64 `yaml:"learning_rate"` // α in Q ← Q + α(r − Q), in (0,1] (reference 0.1)
}

// ExplorationConfig groups the epsilon-greedy schedule.
type ExplorationConfig struct {
	Initial float64 `yaml:"initial"` // starting epsilon (reference 1.0)
	Min     float64 `yaml:"min"`     // epsilon floor (reference 0.05)
	Decay   float64 `yaml:"decay"`   // multiplicative decay per episode (reference 0.98)
}

// TaskConfig groups the uniform ranges synthetic tasks are drawn from.
type TaskConfig struct {
	SizeMinMB float64 `yaml:"size_min_mb"` // reference 1
	SizeMaxMB float64 `yaml:"size_max_mb"` // reference 10
	DemandMin float64 `yaml:"demand_min"`  // reference 0.5
	DemandMax float64 `yaml:"demand_max"`  // reference 2.5
}

// CostConfig groups the cost model and reward constants.
type CostConfig struct {
	CyclesPerUnit           float64 `yaml:"cycles_per_unit"`           // instructions per demand unit (reference 1000)
	TimeScale               float64 `yaml:"time_scale"`                // seconds → reporting unit (reference 1000, i.e. ms)
	UtilizationDelayPenalty float64 `yaml:"utilization_delay_penalty"` // delay added per unit of utilization (reference 50 ms)
	RewardNormalization     float64 `yaml:"reward_normalization"`      // delay divisor in the reward (reference 1000)
	UtilizationModel        string  `yaml:"utilization_model"`         // "synthetic" (default) or "historical"
	UtilizationMin          float64 `yaml:"utilization_min"`           // synthetic lower bound (reference 0.2)
	UtilizationMax          float64 `yaml:"utilization_max"`           // synthetic upper bound (reference 0.8)
	HistoryWeight           float64 `yaml:"history_weight"`            // EWMA weight of a new observation, in (0,1]
	HistoryPrior            float64 `yaml:"history_prior"`             // historical estimate for unobserved nodes
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		Seed: 42,
		Learning: LearningConfig{
			Episodes:     200,
			LearningRate: 0.1,
		},
		Exploration: ExplorationConfig{
			Initial: 1.0,
			Min:     0.05,
			Decay:   0.98,
		},
		Task: TaskConfig{
			SizeMinMB: 1,
			SizeMaxMB: 10,
			DemandMin: 0.5,
			DemandMax: 2.5,
		},
		Cost: CostConfig{
			CyclesPerUnit:           1000,
			TimeScale:               1000,
			UtilizationDelayPenalty: 50,
			RewardNormalization:     1000,
			UtilizationModel:        UtilizationModelSynthetic,
			UtilizationMin:          0.2,
			UtilizationMax:          0.8,
			HistoryWeight:           0.5,
			HistoryPrior:            0.5,
		},
	}
}

// Validate checks parameter ranges. It is called before any training starts.
func (c Config) Validate() error {
	if c.Learning.Episodes < 0 {
		return fmt.Errorf("episodes must be non-negative, got %d", c.Learning.Episodes)
	}
	if c.Learning.LearningRate <= 0 || c.Learning.LearningRate > 1 {
		return fmt.Errorf("learning_rate must be in (0,1], got %f", c.Learning.LearningRate)
	}
	e := c.Exploration
	if e.Min < 0 || e.Min > 1 {
		return fmt.Errorf("exploration min must be in [0,1], got %f", e.Min)
	}
	if e.Initial < e.Min || e.Initial > 1 {
		return fmt.Errorf("exploration initial must be in [min,1], got %f", e.Initial)
	}
	if e.Decay <= 0 || e.Decay > 1 {
		return fmt.Errorf("exploration decay must be in (0,1], got %f", e.Decay)
	}
	t := c.Task
	if t.SizeMinMB < 0 || t.SizeMaxMB < t.SizeMinMB {
		return fmt.Errorf("task size range [%f,%f] is invalid", t.SizeMinMB, t.SizeMaxMB)
	}
	if t.DemandMin < 0 || t.DemandMax < t.DemandMin {
		return fmt.Errorf("task demand range [%f,%f] is invalid", t.DemandMin, t.DemandMax)
	}
	k := c.Cost
	if k.CyclesPerUnit <= 0 {
		return fmt.Errorf("cycles_per_unit must be positive, got %f", k.CyclesPerUnit)
	}
	if k.TimeScale <= 0 {
		return fmt.Errorf("time_scale must be positive, got %f", k.TimeScale)
	}
	if k.UtilizationDelayPenalty < 0 {
		return fmt.Errorf("utilization_delay_penalty must be non-negative, got %f", k.UtilizationDelayPenalty)
	}
	if k.RewardNormalization <= 0 {
		return fmt.Errorf("reward_normalization must be positive, got %f", k.RewardNormalization)
	}
	if !ValidUtilizationModels[k.UtilizationModel] {
		return fmt.Errorf("unknown utilization model %q", k.UtilizationModel)
	}
	if k.UtilizationMin < 0 || k.UtilizationMax > 1 || k.UtilizationMax < k.UtilizationMin {
		return fmt.Errorf("utilization range [%f,%f] must lie within [0,1]", k.UtilizationMin, k.UtilizationMax)
	}
	if k.HistoryWeight <= 0 || k.HistoryWeight > 1 {
		return fmt.Errorf("history_weight must be in (0,1], got %f", k.HistoryWeight)
	}
	if k.HistoryPrior < 0 || k.HistoryPrior > 1 {
		return fmt.Errorf("history_prior must be in [0,1], got %f", k.HistoryPrior)
	}
	return nil
}
