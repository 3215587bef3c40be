// Package trace provides per-episode decision recording for training analysis.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// EpisodeRecord captures one training episode: the sampled task, the chosen
// node, the observed cost and the resulting update.
type EpisodeRecord struct {
	Episode          int
	TaskSizeMB       float64
	ProcessingDemand float64
	NodeID           int
	Explored         bool    // true if chosen by the random branch
	Epsilon          float64 // exploration rate in effect when the node was chosen
	Delay            float64
	Utilization      float64
	Reward           float64
	QBefore          float64
	QAfter           float64
}
