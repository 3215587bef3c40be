package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fogsim/fog-offload-sim/sim"
)

func TestBuildTopology_DefaultConfig_CloudPlusThreeFogNodes(t *testing.T) {
	// GIVEN the reference topology
	topo := BuildTopology(DefaultTopologyConfig())

	// WHEN converted to decision-engine nodes
	nodes := topo.Nodes()

	// THEN there is one cloud root followed by fog-1..fog-3
	require.Len(t, nodes, 4)
	assert.Equal(t, "cloud", nodes[0].Name)
	assert.True(t, nodes[0].Cloud)
	for i := 1; i < 4; i++ {
		assert.Equal(t, sim.NodeID(i), nodes[i].ID)
		assert.False(t, nodes[i].Cloud)
		assert.Equal(t, 5000.0, nodes[i].ComputeRate)
		assert.Equal(t, 1000.0, nodes[i].UplinkBandwidth)
	}
	assert.Equal(t, "fog-3", nodes[3].Name)
}

func TestBuildTopology_EligibleNodesExcludeCloud(t *testing.T) {
	nodes, err := sim.EligibleNodes(BuildTopology(DefaultTopologyConfig()).Nodes())
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	for _, n := range nodes {
		assert.NotEqual(t, "cloud", n.Name)
	}
}

func TestBuildTopology_ZeroFogNodes_NoEligibleNodes(t *testing.T) {
	cfg := DefaultTopologyConfig()
	cfg.FogNodes = 0
	_, err := sim.EligibleNodes(BuildTopology(cfg).Nodes())
	assert.ErrorIs(t, err, sim.ErrNoEligibleNodes)
}

func TestTopologyConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultTopologyConfig().Validate())

	bad := DefaultTopologyConfig()
	bad.FogNodes = -1
	assert.Error(t, bad.Validate())

	bad = DefaultTopologyConfig()
	bad.Fog.BusyPowerW = 1
	assert.Error(t, bad.Validate())
}

func TestTopology_Spec_OutOfRange(t *testing.T) {
	topo := BuildTopology(DefaultTopologyConfig())
	_, ok := topo.Spec(sim.NodeID(99))
	assert.False(t, ok)
	_, ok = topo.Spec(sim.NodeID(-1))
	assert.False(t, ok)
}

func TestSensorNames(t *testing.T) {
	assert.Equal(t, []string{"sensor-0", "sensor-1", "sensor-2"}, SensorNames(3))
	assert.Empty(t, SensorNames(0))
}
