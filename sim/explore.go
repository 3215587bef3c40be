package sim

import (
	"math"
	"math/rand"
)

// EpsilonGreedy selects actions with probability epsilon uniformly at random
// and otherwise greedily from the Q-table.
// Epsilon decays multiplicatively per episode and never drops below its floor.
type EpsilonGreedy struct {
	epsilon float64
	min     float64
	decay   float64
	rng     *rand.Rand
}

// NewEpsilonGreedy creates a selector starting at cfg.Initial.
func NewEpsilonGreedy(cfg ExplorationConfig, rng *rand.Rand) *EpsilonGreedy {
	return &EpsilonGreedy{
		epsilon: math.Max(cfg.Min, cfg.Initial),
		min:     cfg.Min,
		decay:   cfg.Decay,
		rng:     rng,
	}
}

// Select returns the chosen node and whether it was an exploration move.
// Does not decay epsilon; call Decay once per completed episode.
func (p *EpsilonGreedy) Select(table *QTable) (NodeID, bool, error) {
	ids := table.NodeIDs()
	if len(ids) == 0 {
		return 0, false, ErrNoEligibleNodes
	}
	if p.rng.Float64() < p.epsilon {
		return ids[p.rng.Intn(len(ids))], true, nil
	}
	id, err := table.Best()
	return id, false, err
}

// Decay applies epsilon ← max(min, epsilon × decay).
func (p *EpsilonGreedy) Decay() {
	p.epsilon = math.Max(p.min, p.epsilon*p.decay)
}

// Epsilon returns the current exploration rate.
func (p *EpsilonGreedy) Epsilon() float64 {
	return p.epsilon
}
