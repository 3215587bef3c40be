package sim

import (
	"hash/fnv"
	"math/rand"
)

// Random streams of one run. Every consumer draws from its own stream, so an
// extra exploration draw never shifts the sampled tasks or utilizations.
const (
	SubsystemWorkload    = "workload"    // task sizes and demands
	SubsystemExplore     = "explore"     // epsilon coin flips and random picks
	SubsystemUtilization = "utilization" // synthetic utilization draws
)

// SimulationKey is the master seed of a run.
// Equal keys with equal configuration MUST produce identical Q-tables and placements.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Seed derives the seed of the named stream. The workload stream uses the key
// itself; every other stream mixes in the FNV-1a hash of its name.
func (k SimulationKey) Seed(name string) int64 {
	if name == SubsystemWorkload {
		return int64(k)
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(k) ^ int64(h.Sum64())
}

// PartitionedRNG hands out one cached *rand.Rand per named stream.
// Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	rng, ok := p.streams[name]
	if !ok {
		rng = rand.New(rand.NewSource(p.key.Seed(name)))
		p.streams[name] = rng
	}
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}
