package cluster

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fogsim/fog-offload-sim/sim"
)

// RunState is the lifecycle of one Simulator.
type RunState string

const (
	RunStateIdle     RunState = "idle"
	RunStateFinished RunState = "finished"
	RunStateStopped  RunState = "stopped"
)

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("simulation already started")
	// ErrNotStarted is returned by Stop before Start.
	ErrNotStarted = errors.New("simulation not started")
	// ErrNotStopped is returned by NodeStats before the run has been stopped.
	ErrNotStopped = errors.New("simulation not stopped")
	// ErrBadPlacement is returned when a plan targets a device that cannot run tuples.
	ErrBadPlacement = errors.New("bad placement")
)

// nodeState is the per-device runtime state: a FIFO single server.
type nodeState struct {
	spec       NodeSpec
	queue      []*Tuple
	busy       bool
	busyTicks  int64 // busy time inside the horizon
	processed  int
	latencySum int64
}

// Simulator is a discrete-event engine for one placement run over a fog
// topology. It implements sim.Engine. One Simulator serves exactly one run.
type Simulator struct {
	topology Topology
	app      AppConfig
	horizon  int64

	nodes       []*nodeState
	events      *EventHeap
	clock       int64
	nextEventID uint64 // per-simulator counter for deterministic ordering
	state       RunState
}

// NewSimulator creates an engine over topology running app for horizonMs.
func NewSimulator(topology Topology, app AppConfig, horizonMs float64) (*Simulator, error) {
	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application: %w", err)
	}
	if horizonMs <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %f ms", horizonMs)
	}
	nodes := make([]*nodeState, len(topology.Specs))
	for i, s := range topology.Specs {
		nodes[i] = &nodeState{spec: s}
	}
	return &Simulator{
		topology: topology,
		app:      app,
		horizon:  msToTicks(horizonMs),
		nodes:    nodes,
		events:   NewEventHeap(),
		state:    RunStateIdle,
	}, nil
}

// State returns the lifecycle state.
func (s *Simulator) State() RunState {
	return s.state
}

// Clock returns the timestamp of the last executed event.
func (s *Simulator) Clock() int64 {
	return s.clock
}

func (s *Simulator) newEventID() uint64 {
	s.nextEventID++
	return s.nextEventID
}

// Start installs plan and runs the simulation to the horizon. Blocking.
func (s *Simulator) Start(plan sim.Plan) error {
	if s.state != RunStateIdle {
		return ErrAlreadyStarted
	}
	assignments := plan.Assignments()
	for _, a := range assignments {
		spec, ok := s.topology.Spec(a.Node)
		if !ok {
			return fmt.Errorf("%w: %s assigned to unknown device %d", ErrBadPlacement, a.Entity, a.Node)
		}
		if spec.MIPS <= 0 {
			return fmt.Errorf("%w: %s assigned to %s with no compute", ErrBadPlacement, a.Entity, spec.Name)
		}
	}
	logrus.Infof("Running simulation with %s mapping: %d entities, horizon %.0f ms",
		plan.Policy, len(assignments), ticksToMs(s.horizon))
	for _, a := range assignments {
		s.events.Schedule(NewSensorEmitEvent(0, a.Entity, a.Node, s.newEventID()))
	}
	s.run()
	s.state = RunStateFinished
	return nil
}

func (s *Simulator) run() {
	for {
		event, ok := s.events.PopDue(s.horizon)
		if !ok {
			return
		}
		if event.Timestamp() < s.clock {
			panic(fmt.Sprintf("Clock went backwards: %d < %d", event.Timestamp(), s.clock))
		}
		s.clock = event.Timestamp()
		event.Execute(s)
	}
}

// Stop ends the run. Statistics are readable afterwards.
func (s *Simulator) Stop() error {
	switch s.state {
	case RunStateIdle:
		return ErrNotStarted
	case RunStateStopped:
		return nil
	}
	s.state = RunStateStopped
	return nil
}

// NodeStats implements sim.NodeStatsSource.
func (s *Simulator) NodeStats(id sim.NodeID) (sim.NodeStats, error) {
	if s.state != RunStateStopped {
		return sim.NodeStats{}, ErrNotStopped
	}
	if int(id) < 0 || int(id) >= len(s.nodes) {
		return sim.NodeStats{}, fmt.Errorf("node %d: %w", id, sim.ErrUnknownNode)
	}
	n := s.nodes[id]
	util := float64(n.busyTicks) / float64(s.horizon)
	if util > 1 {
		util = 1
	}
	stats := sim.NodeStats{
		Utilization:     util,
		TuplesProcessed: n.processed,
		EnergyJoules:    (n.spec.IdlePowerW + (n.spec.BusyPowerW-n.spec.IdlePowerW)*util) * ticksToMs(s.horizon) / 1000,
	}
	if n.processed > 0 {
		stats.MeanLatencyMs = ticksToMs(n.latencySum) / float64(n.processed)
	}
	return stats, nil
}

// Event handlers

func (s *Simulator) handleSensorEmit(e *SensorEmitEvent) {
	t := &Tuple{Entity: e.Entity, Node: e.Node, Emitted: e.Timestamp()}
	s.events.Schedule(NewTupleArrivalEvent(e.Timestamp()+msToTicks(s.app.SensorLatencyMs), t, s.newEventID()))

	next := e.Timestamp() + msToTicks(s.app.SensorPeriodMs)
	if next <= s.horizon {
		s.events.Schedule(NewSensorEmitEvent(next, e.Entity, e.Node, s.newEventID()))
	}
}

func (s *Simulator) handleTupleArrival(e *TupleArrivalEvent) {
	n := s.nodes[e.Tuple.Node]
	n.queue = append(n.queue, e.Tuple)
	if !n.busy {
		s.startNext(n, e.Timestamp())
	}
}

func (s *Simulator) handleTupleCompleted(e *TupleCompletedEvent) {
	n := s.nodes[e.Tuple.Node]
	n.busy = false
	n.processed++
	n.latencySum += e.Timestamp() + msToTicks(s.app.ActuatorLatencyMs) - e.Tuple.Emitted
	s.startNext(n, e.Timestamp())
}

// startNext begins serving the head of n's queue at now.
// Busy time is clipped at the horizon so utilization stays within [0,1].
func (s *Simulator) startNext(n *nodeState, now int64) {
	if len(n.queue) == 0 {
		return
	}
	t := n.queue[0]
	n.queue = n.queue[1:]
	t.Started = now
	t.Service = int64(s.app.CPULength() / n.spec.MIPS * 1e6)
	n.busy = true
	n.busyTicks += min(t.Service, s.horizon-now)
	s.events.Schedule(NewTupleCompletedEvent(now+t.Service, t, s.newEventID()))
}
