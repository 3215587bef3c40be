package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/trace"
)

func TestPrintTraining_MarksGreedyPick(t *testing.T) {
	// GIVEN a training result favouring node 2
	result := &sim.TrainingResult{
		Episodes:     3,
		QValues:      map[sim.NodeID]float64{1: -0.5, 2: -0.2, 3: -0.4},
		FinalEpsilon: 0.9412,
		Best:         2,
	}
	tr := trace.NewTrainingTrace(trace.TraceLevelEpisodes)
	tr.ObserveEpisode(trace.EpisodeRecord{Episode: 0, NodeID: 2, Explored: true, Reward: -0.2})

	// WHEN printed
	var buf bytes.Buffer
	printTraining(&buf, result, trace.Summarize(tr))
	printEpisodes(&buf, tr)

	// THEN the greedy node is marked and the summary follows
	out := buf.String()
	assert.Contains(t, out, "node 2: -0.200000  <- greedy")
	assert.NotContains(t, out, "node 1: -0.500000  <- greedy")
	assert.Contains(t, out, "explore=1 exploit=0")
	assert.Contains(t, out, "node 2 selected 1 times")
	assert.Contains(t, out, "explore node=2")
}

func TestPrintComparison_OneLinePerPolicy(t *testing.T) {
	reports := []*sim.Report{
		{RunID: "a", Policy: sim.PlacementGreedyQ, Nodes: []sim.NodeReport{{Node: 1, Name: "fog-1", NodeStats: sim.NodeStats{Utilization: 1}}}},
		{RunID: "b", Policy: sim.PlacementRoundRobin, Nodes: []sim.NodeReport{{Node: 1, Name: "fog-1", NodeStats: sim.NodeStats{Utilization: 0.8}}}},
	}
	var buf bytes.Buffer
	printComparison(&buf, reports)
	out := buf.String()
	assert.Contains(t, out, "=== Comparison ===")
	assert.Contains(t, out, "greedy-q     mean=1.0000")
	assert.Contains(t, out, "round-robin  mean=0.8000")
}
