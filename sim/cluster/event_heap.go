package cluster

import "container/heap"

// eventQueue is the heap.Interface backing store of EventHeap.
type eventQueue []Event

func (q eventQueue) Len() int { return len(q) }

// Less orders by timestamp, then type priority, then event ID, so that
// simultaneous events always run in the same order.
func (q eventQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.Timestamp() != b.Timestamp() {
		return a.Timestamp() < b.Timestamp()
	}
	if pa, pb := EventTypePriority[a.Type()], EventTypePriority[b.Type()]; pa != pb {
		return pa < pb
	}
	return a.EventID() < b.EventID()
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// EventHeap is the pending-event set of a Simulator.
type EventHeap struct {
	q eventQueue
}

// NewEventHeap creates an empty event heap.
func NewEventHeap() *EventHeap {
	return &EventHeap{}
}

// Len returns the number of pending events.
func (h *EventHeap) Len() int {
	return h.q.Len()
}

// Schedule adds an event.
func (h *EventHeap) Schedule(e Event) {
	heap.Push(&h.q, e)
}

// PopNext removes and returns the earliest event, or nil if none is pending.
func (h *EventHeap) PopNext() Event {
	if h.q.Len() == 0 {
		return nil
	}
	return heap.Pop(&h.q).(Event)
}

// Peek returns the earliest event without removing it, or nil.
func (h *EventHeap) Peek() Event {
	if h.q.Len() == 0 {
		return nil
	}
	return h.q[0]
}

// PopDue removes and returns the earliest event if it is due at or before
// horizon. Events past the horizon stay pending.
func (h *EventHeap) PopDue(horizon int64) (Event, bool) {
	next := h.Peek()
	if next == nil || next.Timestamp() > horizon {
		return nil, false
	}
	return h.PopNext(), true
}
