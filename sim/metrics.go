// Collects per-node results of finished runs, one independently addressable
// report per run, so that policies can be compared side by side.

package sim

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NodeReport is one node's line in a run report.
type NodeReport struct {
	Node  NodeID
	Name  string
	Cloud bool
	NodeStats
}

// Report is the post-run summary of a single run.
type Report struct {
	RunID  string
	Policy string
	Nodes  []NodeReport
}

// Clone returns a deep copy.
func (r *Report) Clone() *Report {
	c := *r
	c.Nodes = append([]NodeReport(nil), r.Nodes...)
	return &c
}

// Utilization returns the utilization of node id.
func (r *Report) Utilization(id NodeID) (float64, bool) {
	for _, n := range r.Nodes {
		if n.Node == id {
			return n.Utilization, true
		}
	}
	return 0, false
}

// ReportSummary aggregates utilization over the non-cloud nodes of a report.
type ReportSummary struct {
	MeanUtilization   float64
	StdDevUtilization float64 // imbalance indicator: 0 means perfectly even
	MaxUtilization    float64
	TotalEnergy       float64
	TotalProcessed    int
}

// Summary computes the fog-tier summary of the report.
func (r *Report) Summary() ReportSummary {
	var s ReportSummary
	utils := make([]float64, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		s.TotalEnergy += n.EnergyJoules
		s.TotalProcessed += n.TuplesProcessed
		if n.Cloud {
			continue
		}
		utils = append(utils, n.Utilization)
	}
	if len(utils) == 0 {
		return s
	}
	s.MaxUtilization = floats.Max(utils)
	if len(utils) == 1 {
		s.MeanUtilization = utils[0]
		return s
	}
	s.MeanUtilization, s.StdDevUtilization = stat.MeanStdDev(utils, nil)
	return s
}

// Print writes the per-node table of the report.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "--- Metrics for %s (run %s) ---\n", r.Policy, r.RunID)
	for _, n := range r.Nodes {
		fmt.Fprintf(w, "%-10s CPU Utilization: %.4f  Tuples: %5d  Mean Latency: %9.2f ms  Energy: %.1f J\n",
			n.Name, n.Utilization, n.TuplesProcessed, n.MeanLatencyMs, n.EnergyJoules)
	}
	s := r.Summary()
	fmt.Fprintf(w, "Fog utilization mean=%.4f stddev=%.4f max=%.4f\n",
		s.MeanUtilization, s.StdDevUtilization, s.MaxUtilization)
}

// Reporter collects reports of finished runs.
// Reports are stored and handed out as copies; callers never share a report.
type Reporter struct {
	reports map[string]*Report
	order   []string // RunIDs in collection order
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{reports: make(map[string]*Report)}
}

// Collect reads stats for every node from source after a completed run and
// stores a new report under a fresh RunID. Nodes are reported in the given order.
func (rp *Reporter) Collect(policy string, source NodeStatsSource, nodes []Node) (*Report, error) {
	report := &Report{
		RunID:  uuid.NewString(),
		Policy: policy,
		Nodes:  make([]NodeReport, 0, len(nodes)),
	}
	for _, n := range nodes {
		stats, err := source.NodeStats(n.ID)
		if err != nil {
			return nil, fmt.Errorf("collecting %s metrics for node %d: %w", policy, n.ID, err)
		}
		stats.Utilization = clampUnit(stats.Utilization)
		report.Nodes = append(report.Nodes, NodeReport{Node: n.ID, Name: n.Name, Cloud: n.Cloud, NodeStats: stats})
	}
	rp.reports[report.RunID] = report
	rp.order = append(rp.order, report.RunID)
	return report.Clone(), nil
}

// Report returns a copy of the report with the given RunID.
func (rp *Reporter) Report(runID string) (*Report, bool) {
	r, ok := rp.reports[runID]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// ByPolicy returns a copy of the most recent report for policy.
func (rp *Reporter) ByPolicy(policy string) (*Report, bool) {
	for i := len(rp.order) - 1; i >= 0; i-- {
		if r := rp.reports[rp.order[i]]; r.Policy == policy {
			return r.Clone(), true
		}
	}
	return nil, false
}

// Reports returns copies of all reports in collection order.
func (rp *Reporter) Reports() []*Report {
	out := make([]*Report, 0, len(rp.order))
	for _, id := range rp.order {
		out = append(out, rp.reports[id].Clone())
	}
	return out
}
