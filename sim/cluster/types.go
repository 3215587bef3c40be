package cluster

// Event types with priority ordering
type EventType string

const (
	EventTypeTupleCompleted EventType = "TupleCompleted"
	EventTypeTupleArrival   EventType = "TupleArrival"
	EventTypeSensorEmit     EventType = "SensorEmit"
)

// EventTypePriority defines ordering for simultaneous events.
// Lower values are processed first: a completion frees the node before a
// same-tick arrival is queued behind it.
var EventTypePriority = map[EventType]int{
	EventTypeTupleCompleted: 1,
	EventTypeTupleArrival:   2,
	EventTypeSensorEmit:     3,
}

// TicksPerMs converts milliseconds to simulation ticks (microseconds).
const TicksPerMs = 1000

func msToTicks(ms float64) int64 {
	return int64(ms * TicksPerMs)
}

func ticksToMs(ticks int64) float64 {
	return float64(ticks) / TicksPerMs
}
