package sim

import "math/rand"

// Task is an ephemeral synthetic task descriptor, sampled fresh per episode.
type Task struct {
	SizeMB           float64 // transferable size (megabytes)
	ProcessingDemand float64 // compute demand (cycle units, scaled by CyclesPerUnit)
}

// TaskSampler draws synthetic tasks uniformly from the configured ranges.
type TaskSampler struct {
	cfg TaskConfig
	rng *rand.Rand
}

// NewTaskSampler creates a sampler drawing from rng.
func NewTaskSampler(cfg TaskConfig, rng *rand.Rand) *TaskSampler {
	return &TaskSampler{cfg: cfg, rng: rng}
}

// Sample returns the next synthetic task.
// Size is drawn before demand so that a fixed seed yields a fixed task sequence.
func (s *TaskSampler) Sample() Task {
	size := s.cfg.SizeMinMB + s.rng.Float64()*(s.cfg.SizeMaxMB-s.cfg.SizeMinMB)
	demand := s.cfg.DemandMin + s.rng.Float64()*(s.cfg.DemandMax-s.cfg.DemandMin)
	return Task{SizeMB: size, ProcessingDemand: demand}
}
