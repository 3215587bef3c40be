package sim

// Cost is the estimated cost of placing one task on one node.
// All delays are in the reporting time unit (ms under reference settings).
type Cost struct {
	TransferDelay   float64
	ProcessingDelay float64
	Utilization     float64 // in [0,1]
}

// Delay combines the cost into a single delay: transfer + processing plus a
// congestion penalty proportional to utilization.
func (c Cost) Delay(utilizationPenalty float64) float64 {
	return c.TransferDelay + c.ProcessingDelay + c.Utilization*utilizationPenalty
}

// CostEstimator scores a candidate node for a task.
// The only state it touches is the utilization estimator's RNG stream.
type CostEstimator struct {
	cfg         CostConfig
	utilization UtilizationEstimator
}

// NewCostEstimator creates an estimator using the given utilization model.
func NewCostEstimator(cfg CostConfig, utilization UtilizationEstimator) *CostEstimator {
	return &CostEstimator{cfg: cfg, utilization: utilization}
}

// TransferDelay returns size_bits / uplink, scaled by TimeScale.
// With sizes in MB and bandwidth in Mbps this is seconds × TimeScale.
func (e *CostEstimator) TransferDelay(n Node, t Task) (float64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}
	return t.SizeMB * 8.0 / n.UplinkBandwidth * e.cfg.TimeScale, nil
}

// ProcessingDelay returns demand × CyclesPerUnit / compute rate, scaled by TimeScale.
func (e *CostEstimator) ProcessingDelay(n Node, t Task) (float64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}
	return t.ProcessingDemand * e.cfg.CyclesPerUnit / n.ComputeRate * e.cfg.TimeScale, nil
}

// Utilization returns the node's load indicator, clamped to [0,1].
func (e *CostEstimator) Utilization(n Node) float64 {
	return clampUnit(e.utilization.Estimate(n.ID))
}

// Estimate returns transfer delay, processing delay and utilization for t on n.
// Fails with ErrInvalidNodeConfig before drawing a utilization sample.
func (e *CostEstimator) Estimate(n Node, t Task) (Cost, error) {
	transfer, err := e.TransferDelay(n, t)
	if err != nil {
		return Cost{}, err
	}
	processing, err := e.ProcessingDelay(n, t)
	if err != nil {
		return Cost{}, err
	}
	return Cost{
		TransferDelay:   transfer,
		ProcessingDelay: processing,
		Utilization:     e.Utilization(n),
	}, nil
}
