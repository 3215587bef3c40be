package sim

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStats serves fixed per-node stats.
type stubStats map[NodeID]NodeStats

func (s stubStats) NodeStats(id NodeID) (NodeStats, error) {
	st, ok := s[id]
	if !ok {
		return NodeStats{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return st, nil
}

func TestReporter_Collect_IndependentReports(t *testing.T) {
	// GIVEN two runs with different outcomes
	rp := NewReporter()
	nodes := testNodes()
	rr := stubStats{0: {}, 1: {Utilization: 0.8}, 2: {Utilization: 0.8}, 3: {Utilization: 0.8}}
	greedy := stubStats{0: {}, 1: {Utilization: 1}, 2: {}, 3: {}}

	// WHEN both are collected
	a, err := rp.Collect(PlacementRoundRobin, rr, nodes)
	require.NoError(t, err)
	b, err := rp.Collect(PlacementGreedyQ, greedy, nodes)
	require.NoError(t, err)

	// THEN each is addressable by its own run id and policy
	assert.NotEqual(t, a.RunID, b.RunID)
	gotA, ok := rp.Report(a.RunID)
	require.True(t, ok)
	u, _ := gotA.Utilization(2)
	assert.Equal(t, 0.8, u)
	gotB, ok := rp.ByPolicy(PlacementGreedyQ)
	require.True(t, ok)
	u, _ = gotB.Utilization(2)
	assert.Equal(t, 0.0, u)
	assert.Len(t, rp.Reports(), 2)
}

func TestReporter_ReturnedReportsAreNotAliased(t *testing.T) {
	rp := NewReporter()
	r, err := rp.Collect(PlacementRoundRobin, stubStats{1: {Utilization: 0.5}}, testNodes()[1:2])
	require.NoError(t, err)

	r.Nodes[0].Utilization = 0.9
	stored, _ := rp.Report(r.RunID)
	stored.Nodes[0].Utilization = 0.1

	again, _ := rp.Report(r.RunID)
	assert.Equal(t, 0.5, again.Nodes[0].Utilization)
}

func TestReporter_ClampsUtilization(t *testing.T) {
	rp := NewReporter()
	r, err := rp.Collect("x", stubStats{1: {Utilization: 1.0000001}, 2: {Utilization: -0.1}}, testNodes()[1:3])
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Nodes[0].Utilization)
	assert.Equal(t, 0.0, r.Nodes[1].Utilization)
}

func TestReporter_SourceErrorPropagates(t *testing.T) {
	rp := NewReporter()
	_, err := rp.Collect("x", stubStats{}, testNodes()[1:2])
	assert.True(t, errors.Is(err, ErrUnknownNode))
	assert.Empty(t, rp.Reports())
}

func TestReporter_UnknownLookups(t *testing.T) {
	rp := NewReporter()
	_, ok := rp.Report("nope")
	assert.False(t, ok)
	_, ok = rp.ByPolicy(PlacementGreedyQ)
	assert.False(t, ok)
}

func TestReport_Summary_SkipsCloudUtilization(t *testing.T) {
	r := &Report{Nodes: []NodeReport{
		{Node: 0, Cloud: true, NodeStats: NodeStats{Utilization: 1, EnergyJoules: 100}},
		{Node: 1, NodeStats: NodeStats{Utilization: 1, TuplesProcessed: 10, EnergyJoules: 10}},
		{Node: 2, NodeStats: NodeStats{Utilization: 0, EnergyJoules: 5}},
	}}
	s := r.Summary()
	assert.InDelta(t, 0.5, s.MeanUtilization, 1e-12)
	assert.Greater(t, s.StdDevUtilization, 0.0)
	assert.Equal(t, 1.0, s.MaxUtilization)
	assert.InDelta(t, 115, s.TotalEnergy, 1e-9)
	assert.Equal(t, 10, s.TotalProcessed)
}

func TestReport_Summary_Balanced(t *testing.T) {
	r := &Report{Nodes: []NodeReport{
		{Node: 1, NodeStats: NodeStats{Utilization: 0.8}},
		{Node: 2, NodeStats: NodeStats{Utilization: 0.8}},
	}}
	s := r.Summary()
	assert.InDelta(t, 0.8, s.MeanUtilization, 1e-12)
	assert.InDelta(t, 0, s.StdDevUtilization, 1e-12)
}

func TestReport_Print(t *testing.T) {
	r := &Report{RunID: "run-1", Policy: PlacementRoundRobin, Nodes: []NodeReport{
		{Node: 1, Name: "fog-1", NodeStats: NodeStats{Utilization: 0.8, TuplesProcessed: 10}},
	}}
	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "round-robin")
	assert.Contains(t, out, "fog-1")
	assert.Contains(t, out, "0.8000")
}
