package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/trace"
)

// printTraining writes the frozen table and the training summary.
func printTraining(w io.Writer, result *sim.TrainingResult, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Learned Q-values ===")
	ids := make([]sim.NodeID, 0, len(result.QValues))
	for id := range result.QValues {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		marker := ""
		if id == result.Best {
			marker = "  <- greedy"
		}
		fmt.Fprintf(w, "node %d: %.6f%s\n", id, result.QValues[id], marker)
	}
	fmt.Fprintf(w, "episodes=%d final_epsilon=%.4f\n", result.Episodes, result.FinalEpsilon)
	if summary == nil || summary.TotalEpisodes == 0 {
		return
	}
	fmt.Fprintf(w, "explore=%d exploit=%d reward mean=%.4f min=%.4f max=%.4f\n",
		summary.ExploreCount, summary.ExploitCount, summary.MeanReward, summary.MinReward, summary.MaxReward)
	nodes := make([]int, 0, len(summary.NodeDistribution))
	for id := range summary.NodeDistribution {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)
	for _, id := range nodes {
		fmt.Fprintf(w, "  node %d selected %d times\n", id, summary.NodeDistribution[id])
	}
}

// printEpisodes writes one line per traced episode.
func printEpisodes(w io.Writer, tr *trace.TrainingTrace) {
	fmt.Fprintln(w, "=== Episodes ===")
	for _, ep := range tr.Episodes {
		kind := "exploit"
		if ep.Explored {
			kind = "explore"
		}
		fmt.Fprintf(w, "%4d %-7s node=%d eps=%.4f size=%.2fMB demand=%.2f delay=%.2fms util=%.3f reward=%.4f q=%.4f\n",
			ep.Episode, kind, ep.NodeID, ep.Epsilon, ep.TaskSizeMB, ep.ProcessingDemand,
			ep.Delay, ep.Utilization, ep.Reward, ep.QAfter)
	}
}

// printComparison writes every report followed by a one-line-per-policy summary.
func printComparison(w io.Writer, reports []*sim.Report) {
	for _, r := range reports {
		r.Print(w)
	}
	fmt.Fprintln(w, "=== Comparison ===")
	for _, r := range reports {
		s := r.Summary()
		fmt.Fprintf(w, "%-12s mean=%.4f stddev=%.4f max=%.4f processed=%d energy=%.1fJ\n",
			r.Policy, s.MeanUtilization, s.StdDevUtilization, s.MaxUtilization, s.TotalProcessed, s.TotalEnergy)
	}
}
