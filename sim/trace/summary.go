package trace

import "math"

// TraceSummary aggregates statistics from a TrainingTrace.
type TraceSummary struct {
	TotalEpisodes    int
	ExploreCount     int
	ExploitCount     int
	MeanReward       float64
	MinReward        float64
	MaxReward        float64
	FinalEpsilon     float64 // epsilon in effect during the last episode
	UniqueNodes      int
	NodeDistribution map[int]int // node ID → times chosen
}

// Summarize computes aggregate statistics from a TrainingTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(tt *TrainingTrace) *TraceSummary {
	summary := &TraceSummary{
		NodeDistribution: make(map[int]int),
	}
	if tt == nil || len(tt.Episodes) == 0 {
		return summary
	}

	summary.TotalEpisodes = len(tt.Episodes)
	summary.MinReward = math.Inf(1)
	summary.MaxReward = math.Inf(-1)
	total := 0.0
	for _, ep := range tt.Episodes {
		if ep.Explored {
			summary.ExploreCount++
		} else {
			summary.ExploitCount++
		}
		summary.NodeDistribution[ep.NodeID]++
		total += ep.Reward
		summary.MinReward = math.Min(summary.MinReward, ep.Reward)
		summary.MaxReward = math.Max(summary.MaxReward, ep.Reward)
	}
	summary.MeanReward = total / float64(len(tt.Episodes))
	summary.FinalEpsilon = tt.Episodes[len(tt.Episodes)-1].Epsilon
	summary.UniqueNodes = len(summary.NodeDistribution)

	return summary
}
