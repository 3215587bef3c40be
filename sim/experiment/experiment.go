// Package experiment runs the decision engine against the fog simulation
// engine once per placement policy and collects comparable reports.
package experiment

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/cluster"
	"github.com/fogsim/fog-offload-sim/sim/trace"
)

// EngineFactory creates a fresh engine for one run.
type EngineFactory func(topology cluster.Topology, app cluster.AppConfig, horizonMs float64) (sim.Engine, error)

// NewClusterEngine is the default EngineFactory, backed by cluster.Simulator.
func NewClusterEngine(topology cluster.Topology, app cluster.AppConfig, horizonMs float64) (sim.Engine, error) {
	return cluster.NewSimulator(topology, app, horizonMs)
}

// Results is the outcome of Runner.Run.
type Results struct {
	Reports  []*sim.Report        // one per policy, in configured order
	Training *sim.TrainingResult  // nil if no policy needed training
	Trace    *trace.TrainingTrace // episodes of the training run
}

// Runner executes one run per configured policy. Every run gets its own
// RunContext and engine; nothing carries over between runs except the
// Reporter that collects their results.
type Runner struct {
	cfg       Config
	topology  cluster.Topology
	newEngine EngineFactory
	reporter  *sim.Reporter
	observers []sim.EpisodeObserver
}

// NewRunner validates cfg and builds the topology.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		cfg:       cfg,
		topology:  cluster.BuildTopology(cfg.Topology),
		newEngine: NewClusterEngine,
		reporter:  sim.NewReporter(),
	}, nil
}

// SetEngineFactory replaces the engine used for every subsequent run.
func (r *Runner) SetEngineFactory(f EngineFactory) {
	r.newEngine = f
}

// AddObserver registers an observer on every training run.
func (r *Runner) AddObserver(o sim.EpisodeObserver) {
	r.observers = append(r.observers, o)
}

// Topology returns the built topology.
func (r *Runner) Topology() cluster.Topology {
	return r.topology
}

// Reporter returns the reporter holding every collected report.
func (r *Runner) Reporter() *sim.Reporter {
	return r.reporter
}

// Train builds a fresh RunContext and trains it to a frozen table.
// With the historical utilization model the context is first primed by a
// round-robin calibration run.
func (r *Runner) Train() (*sim.RunContext, *sim.TrainingResult, *trace.TrainingTrace, error) {
	rc, err := r.newRunContext()
	if err != nil {
		return nil, nil, nil, err
	}
	tr := trace.NewTrainingTrace(trace.TraceLevel(r.cfg.TraceLevel))
	learner := sim.NewLearner(rc)
	learner.AddObserver(tr)
	for _, o := range r.observers {
		learner.AddObserver(o)
	}
	result, err := learner.Train()
	if err != nil {
		return nil, nil, nil, err
	}
	return rc, result, tr, nil
}

// Run executes every configured policy in order.
// Errors from the engine are returned unmodified.
func (r *Runner) Run() (*Results, error) {
	results := &Results{}
	entities := cluster.SensorNames(r.cfg.IoTDevices)

	for _, policy := range r.cfg.Policies {
		var rc *sim.RunContext
		if policy == sim.PlacementGreedyQ {
			var err error
			rc, results.Training, results.Trace, err = r.Train()
			if err != nil {
				return nil, err
			}
		} else {
			var err error
			if rc, err = sim.NewRunContext(r.cfg.Decision, r.topology.Nodes()); err != nil {
				return nil, err
			}
		}

		plan, err := sim.BuildPlan(sim.NewPlacementStrategy(policy, rc), entities)
		if err != nil {
			return nil, fmt.Errorf("building %s plan: %w", policy, err)
		}
		engine, err := r.execute(plan)
		if err != nil {
			return nil, err
		}
		report, err := r.reporter.Collect(policy, engine, r.topology.Nodes())
		if err != nil {
			return nil, err
		}
		logrus.Infof("Finished %s run %s", policy, report.RunID)
		results.Reports = append(results.Reports, report)
	}
	return results, nil
}

// execute runs plan on a fresh engine to completion and stops it.
func (r *Runner) execute(plan sim.Plan) (sim.Engine, error) {
	engine, err := r.newEngine(r.topology, r.cfg.Application, r.cfg.HorizonMs)
	if err != nil {
		return nil, err
	}
	if err := engine.Start(plan); err != nil {
		return nil, err
	}
	if err := engine.Stop(); err != nil {
		return nil, err
	}
	return engine, nil
}

func (r *Runner) newRunContext() (*sim.RunContext, error) {
	rc, err := sim.NewRunContext(r.cfg.Decision, r.topology.Nodes())
	if err != nil {
		return nil, err
	}
	if obs, ok := rc.Utilization.(sim.LoadObserver); ok {
		if err := r.calibrate(rc, obs); err != nil {
			return nil, fmt.Errorf("calibration: %w", err)
		}
	}
	return rc, nil
}

// calibrate runs a round-robin placement and feeds the measured utilization
// of every eligible node into obs.
func (r *Runner) calibrate(rc *sim.RunContext, obs sim.LoadObserver) error {
	entities := cluster.SensorNames(r.cfg.IoTDevices)
	plan, err := sim.BuildPlan(sim.NewRoundRobin(rc.Nodes), entities)
	if err != nil {
		return err
	}
	engine, err := r.execute(plan)
	if err != nil {
		return err
	}
	for _, n := range rc.Nodes {
		stats, err := engine.NodeStats(n.ID)
		if err != nil {
			return err
		}
		obs.Observe(n.ID, stats.Utilization)
		logrus.Debugf("calibrated %s utilization=%.3f", n.Name, stats.Utilization)
	}
	return nil
}
