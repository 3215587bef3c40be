package cluster

import "github.com/fogsim/fog-offload-sim/sim"

// Event represents a simulation event
type Event interface {
	Timestamp() int64
	EventID() uint64
	Type() EventType
	Execute(s *Simulator)
}

// BaseEvent provides common event fields
type BaseEvent struct {
	timestamp int64
	eventID   uint64
	eventType EventType
}

func newBaseEvent(timestamp int64, eventType EventType, eventID uint64) BaseEvent {
	return BaseEvent{
		timestamp: timestamp,
		eventID:   eventID,
		eventType: eventType,
	}
}

func (e *BaseEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *BaseEvent) EventID() uint64 {
	return e.eventID
}

func (e *BaseEvent) Type() EventType {
	return e.eventType
}

// Tuple is one sensor emission travelling through the application loop.
type Tuple struct {
	Entity  string
	Node    sim.NodeID
	Emitted int64 // tick the sensor emitted it
	Started int64 // tick processing started on the node
	Service int64 // processing time in ticks
}

// SensorEmitEvent represents a sensor emitting a tuple
type SensorEmitEvent struct {
	BaseEvent
	Entity string
	Node   sim.NodeID
}

func NewSensorEmitEvent(timestamp int64, entity string, node sim.NodeID, eventID uint64) *SensorEmitEvent {
	return &SensorEmitEvent{
		BaseEvent: newBaseEvent(timestamp, EventTypeSensorEmit, eventID),
		Entity:    entity,
		Node:      node,
	}
}

func (e *SensorEmitEvent) Execute(s *Simulator) {
	s.handleSensorEmit(e)
}

// TupleArrivalEvent represents a tuple reaching its gateway node
type TupleArrivalEvent struct {
	BaseEvent
	Tuple *Tuple
}

func NewTupleArrivalEvent(timestamp int64, t *Tuple, eventID uint64) *TupleArrivalEvent {
	return &TupleArrivalEvent{
		BaseEvent: newBaseEvent(timestamp, EventTypeTupleArrival, eventID),
		Tuple:     t,
	}
}

func (e *TupleArrivalEvent) Execute(s *Simulator) {
	s.handleTupleArrival(e)
}

// TupleCompletedEvent represents a node finishing a tuple
type TupleCompletedEvent struct {
	BaseEvent
	Tuple *Tuple
}

func NewTupleCompletedEvent(timestamp int64, t *Tuple, eventID uint64) *TupleCompletedEvent {
	return &TupleCompletedEvent{
		BaseEvent: newBaseEvent(timestamp, EventTypeTupleCompleted, eventID),
		Tuple:     t,
	}
}

func (e *TupleCompletedEvent) Execute(s *Simulator) {
	s.handleTupleCompleted(e)
}
