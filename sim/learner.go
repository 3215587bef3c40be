package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fogsim/fog-offload-sim/sim/trace"
)

// RunContext owns all mutable state of one simulation run: configuration,
// random streams, the eligible action set, the Q-table and the utilization
// model. It is created once per run and discarded at run end.
type RunContext struct {
	Config      Config
	RNG         *PartitionedRNG
	Nodes       []Node // eligible nodes, ascending by ID
	Table       *QTable
	Utilization UtilizationEstimator
}

// NewRunContext validates cfg, filters topology down to eligible nodes and
// populates a fresh Q-table (state Training).
// Returns ErrNoEligibleNodes if no node can be an offload target.
func NewRunContext(cfg Config, topology []Node) (*RunContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	nodes, err := EligibleNodes(topology)
	if err != nil {
		return nil, err
	}
	ids := make([]NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	table := NewQTable()
	if err := table.Populate(ids); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	return &RunContext{
		Config:      cfg,
		RNG:         rng,
		Nodes:       nodes,
		Table:       table,
		Utilization: NewUtilizationEstimator(cfg.Cost, rng),
	}, nil
}

// Node returns the eligible node with the given id.
func (rc *RunContext) Node(id NodeID) (Node, bool) {
	for _, n := range rc.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EpisodeObserver receives a record of every completed training episode.
type EpisodeObserver interface {
	ObserveEpisode(record trace.EpisodeRecord)
}

// TrainingResult is the outcome of Learner.Train.
type TrainingResult struct {
	Episodes     int
	QValues      map[NodeID]float64 // copy of the frozen table
	FinalEpsilon float64
	Best         NodeID // greedy pick of the frozen table
}

// Learner runs the training loop over a RunContext.
type Learner struct {
	rc        *RunContext
	sampler   *TaskSampler
	policy    *EpsilonGreedy
	estimator *CostEstimator
	observers []EpisodeObserver
}

// NewLearner wires the sampler, exploration policy and cost estimator of rc.
func NewLearner(rc *RunContext) *Learner {
	return &Learner{
		rc:        rc,
		sampler:   NewTaskSampler(rc.Config.Task, rc.RNG.ForSubsystem(SubsystemWorkload)),
		policy:    NewEpsilonGreedy(rc.Config.Exploration, rc.RNG.ForSubsystem(SubsystemExplore)),
		estimator: NewCostEstimator(rc.Config.Cost, rc.Utilization),
	}
}

// AddObserver registers an observer notified after each episode.
func (l *Learner) AddObserver(o EpisodeObserver) {
	l.observers = append(l.observers, o)
}

// Epsilon returns the current exploration rate.
func (l *Learner) Epsilon() float64 {
	return l.policy.Epsilon()
}

// Train runs the configured number of episodes strictly in sequence and then
// freezes the table. Each episode: sample a task, select a node, estimate its
// cost, convert to reward, update that node's value, decay epsilon once.
func (l *Learner) Train() (*TrainingResult, error) {
	table := l.rc.Table
	if table.State() != TableTraining {
		return nil, fmt.Errorf("train: table is %s, want %s", table.State(), TableTraining)
	}
	cfg := l.rc.Config

	for ep := 0; ep < cfg.Learning.Episodes; ep++ {
		task := l.sampler.Sample()
		epsilon := l.policy.Epsilon()

		id, explored, err := l.policy.Select(table)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", ep, err)
		}
		node, ok := l.rc.Node(id)
		if !ok {
			return nil, fmt.Errorf("episode %d: node %d: %w", ep, id, ErrUnknownNode)
		}
		cost, err := l.estimator.Estimate(node, task)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", ep, err)
		}
		delay := cost.Delay(cfg.Cost.UtilizationDelayPenalty)
		reward := Reward(delay, cost.Utilization, cfg.Cost.RewardNormalization)

		before, _ := table.Value(id)
		if err := table.Update(id, reward, cfg.Learning.LearningRate); err != nil {
			return nil, fmt.Errorf("episode %d: %w", ep, err)
		}
		after, _ := table.Value(id)
		l.policy.Decay()

		logrus.Debugf("episode %d: node=%d explored=%v delay=%.2f util=%.3f reward=%.4f q=%.4f",
			ep, id, explored, delay, cost.Utilization, reward, after)

		record := trace.EpisodeRecord{
			Episode:          ep,
			TaskSizeMB:       task.SizeMB,
			ProcessingDemand: task.ProcessingDemand,
			NodeID:           int(id),
			Explored:         explored,
			Epsilon:          epsilon,
			Delay:            delay,
			Utilization:      cost.Utilization,
			Reward:           reward,
			QBefore:          before,
			QAfter:           after,
		}
		for _, o := range l.observers {
			o.ObserveEpisode(record)
		}
	}

	table.Freeze()
	best, err := table.Best()
	if err != nil {
		return nil, err
	}
	logrus.Infof("Learned Q-values: %v (greedy pick node %d)", table.Snapshot(), best)
	return &TrainingResult{
		Episodes:     cfg.Learning.Episodes,
		QValues:      table.Snapshot(),
		FinalEpsilon: l.policy.Epsilon(),
		Best:         best,
	}, nil
}
