// Package sim provides the offload decision engine for fog task placement.
//
// # Reading Guide
//
// Start with these files to understand the decision engine:
//   - node.go: Node identity, capacities and eligibility (cloud is never a target)
//   - qtable.go: the single-state Q-table and its Uninitialized → Training → Frozen lifecycle
//   - learner.go: RunContext and the training loop that fills the Q-table
//   - placement.go: greedy-Q and round-robin placement strategies
//
// # Model
//
// Placement is modelled as a stateless multi-armed bandit: one action per
// eligible fog node, one value per action, no state transition between task
// arrivals.
//
// # Architecture
//
// The sim package defines the decision engine and the interfaces it consumes;
// collaborators live in sub-packages:
//   - sim/cluster/: discrete-event fog topology engine implementing Engine
//   - sim/trace/: per-episode decision trace recording
//   - sim/telemetry/: Prometheus training telemetry (an EpisodeObserver)
//   - sim/experiment/: wiring of training, placement, engine runs and reports
//
// # Key Interfaces
//
//   - UtilizationEstimator: per-node load indicator in [0,1] (synthetic or historical)
//   - PlacementStrategy: bind a task-generating entity to a node
//   - Engine: the external simulation engine (start, stop, per-node stats)
//   - EpisodeObserver: receives every training episode record
package sim
