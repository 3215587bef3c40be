package cluster

import (
	"fmt"

	"github.com/fogsim/fog-offload-sim/sim"
)

// NodeSpec describes the static resources of one fog device.
type NodeSpec struct {
	Name         string  `yaml:"name"`
	MIPS         float64 `yaml:"mips"`          // host compute rate
	RAM          int     `yaml:"ram"`           // MB, informational
	UplinkMbps   float64 `yaml:"uplink_mbps"`   // bandwidth towards the parent
	DownlinkMbps float64 `yaml:"downlink_mbps"` // bandwidth from the parent
	Level        int     `yaml:"level"`         // 0 = cloud, 1 = fog tier
	BusyPowerW   float64 `yaml:"busy_power_w"`  // linear power model at 100% load
	IdlePowerW   float64 `yaml:"idle_power_w"`  // linear power model at 0% load
	RatePerMIPS  float64 `yaml:"rate_per_mips"` // cost rate, informational
}

// TopologyConfig describes a two-tier topology: one cloud and FogNodes
// identical fog devices below it.
type TopologyConfig struct {
	Cloud    NodeSpec `yaml:"cloud"`
	Fog      NodeSpec `yaml:"fog"` // template; Name is ignored
	FogNodes int      `yaml:"fog_nodes"`
}

// DefaultTopologyConfig returns the reference topology: a 44800 MIPS cloud and
// three 5000 MIPS fog nodes.
func DefaultTopologyConfig() TopologyConfig {
	return TopologyConfig{
		Cloud: NodeSpec{
			Name: "cloud", MIPS: 44800, RAM: 40000, UplinkMbps: 100, DownlinkMbps: 10000,
			Level: 0, BusyPowerW: 1648.0, IdlePowerW: 1332.0, RatePerMIPS: 0.01,
		},
		Fog: NodeSpec{
			MIPS: 5000, RAM: 4000, UplinkMbps: 1000, DownlinkMbps: 10000,
			Level: 1, BusyPowerW: 107.339, IdlePowerW: 83.4333, RatePerMIPS: 0.0,
		},
		FogNodes: 3,
	}
}

// Validate checks structural constraints. Zero bandwidth or compute rate on a
// fog node is allowed here: the decision engine excludes such nodes itself.
func (c TopologyConfig) Validate() error {
	if c.FogNodes < 0 {
		return fmt.Errorf("fog_nodes must be non-negative, got %d", c.FogNodes)
	}
	for _, s := range []NodeSpec{c.Cloud, c.Fog} {
		if s.MIPS < 0 || s.UplinkMbps < 0 || s.DownlinkMbps < 0 {
			return fmt.Errorf("node spec %q has negative capacity", s.Name)
		}
		if s.IdlePowerW < 0 || s.BusyPowerW < s.IdlePowerW {
			return fmt.Errorf("node spec %q power range [%f,%f] is invalid", s.Name, s.IdlePowerW, s.BusyPowerW)
		}
	}
	return nil
}

// Topology is a built set of devices. Device IDs are their index: the cloud is
// 0 and fog nodes are 1..N.
type Topology struct {
	Specs []NodeSpec
}

// BuildTopology expands cfg into named devices "cloud", "fog-1", ..., "fog-N".
func BuildTopology(cfg TopologyConfig) Topology {
	specs := make([]NodeSpec, 0, cfg.FogNodes+1)
	cloud := cfg.Cloud
	cloud.Level = 0
	if cloud.Name == "" {
		cloud.Name = "cloud"
	}
	specs = append(specs, cloud)
	for i := 0; i < cfg.FogNodes; i++ {
		fog := cfg.Fog
		fog.Name = fmt.Sprintf("fog-%d", i+1)
		if fog.Level == 0 {
			fog.Level = 1
		}
		specs = append(specs, fog)
	}
	return Topology{Specs: specs}
}

// Nodes returns the decision engine's view of every device, cloud included.
func (t Topology) Nodes() []sim.Node {
	nodes := make([]sim.Node, len(t.Specs))
	for i, s := range t.Specs {
		nodes[i] = sim.Node{
			ID:              sim.NodeID(i),
			Name:            s.Name,
			ComputeRate:     s.MIPS,
			UplinkBandwidth: s.UplinkMbps,
			Cloud:           s.Level == 0,
		}
	}
	return nodes
}

// Spec returns the spec of device id.
func (t Topology) Spec(id sim.NodeID) (NodeSpec, bool) {
	if int(id) < 0 || int(id) >= len(t.Specs) {
		return NodeSpec{}, false
	}
	return t.Specs[id], true
}
