package sim

// NodeStats is what the simulation engine reports for one node after a run.
type NodeStats struct {
	Utilization     float64 // busy fraction of the horizon, in [0,1]
	MeanLatencyMs   float64 // mean sensor-to-actuator latency of completed tuples
	TuplesProcessed int
	EnergyJoules    float64
}

// NodeStatsSource exposes post-run per-node statistics.
type NodeStatsSource interface {
	NodeStats(id NodeID) (NodeStats, error)
}

// Engine is the time-stepped simulation engine.
// Start receives the full placement plan and blocks until the run completes;
// there is no interaction with the decision engine during the run.
// Errors from Start and Stop are passed to callers unmodified.
type Engine interface {
	Start(plan Plan) error
	Stop() error
	NodeStatsSource
}
