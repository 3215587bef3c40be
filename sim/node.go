package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// NodeID is the stable identifier of a compute node for one run.
type NodeID int

// Node is a compute node as seen by the decision engine.
// Capacities are static for the run; learned values live in the QTable, not here.
type Node struct {
	ID              NodeID
	Name            string
	ComputeRate     float64 // aggregate compute rate (MIPS)
	UplinkBandwidth float64 // uplink bandwidth (Mbps)
	Cloud           bool    // the cloud root is never an offload target
}

// Validate checks the capacity attributes needed for cost estimation.
// Returns an error wrapping ErrInvalidNodeConfig.
func (n Node) Validate() error {
	if !positiveFinite(n.UplinkBandwidth) {
		return fmt.Errorf("%w: node %d (%s) uplink bandwidth %v", ErrInvalidNodeConfig, n.ID, n.Name, n.UplinkBandwidth)
	}
	if !positiveFinite(n.ComputeRate) {
		return fmt.Errorf("%w: node %d (%s) compute rate %v", ErrInvalidNodeConfig, n.ID, n.Name, n.ComputeRate)
	}
	return nil
}

// EligibleNodes returns the offload candidates among nodes, sorted by ID.
// The cloud root is skipped silently; misconfigured nodes are skipped with a warning.
// Returns ErrNoEligibleNodes if nothing remains.
func EligibleNodes(nodes []Node) ([]Node, error) {
	eligible := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Cloud {
			continue
		}
		if err := n.Validate(); err != nil {
			logrus.Warnf("excluding node from action set: %v", err)
			continue
		}
		eligible = append(eligible, n)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleNodes
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })
	return eligible, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
