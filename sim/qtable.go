package sim

import (
	"fmt"
	"sort"
)

// TableState is the lifecycle state of a QTable.
type TableState string

const (
	TableUninitialized TableState = "uninitialized"
	TableTraining      TableState = "training"
	TableFrozen        TableState = "frozen"
)

// QTable holds one learned value per eligible node (single-state bandit).
//
// Lifecycle: Uninitialized → Training (Populate) → Frozen (Freeze).
// Entries are created by Populate and never removed; values change only
// through Update.
//
// Thread-safety: NOT thread-safe. One writer during training, readers after Freeze.
type QTable struct {
	state   TableState
	ids     []NodeID // ascending; defines iteration and tie-break order
	values  map[NodeID]float64
	updates int
}

// NewQTable creates an empty, uninitialized table.
func NewQTable() *QTable {
	return &QTable{
		state:  TableUninitialized,
		values: make(map[NodeID]float64),
	}
}

// Populate creates a zero entry for every id and moves the table to Training.
// Duplicate ids collapse to one entry. An empty id set returns ErrNoEligibleNodes
// and leaves the table Uninitialized.
func (q *QTable) Populate(ids []NodeID) error {
	if q.state != TableUninitialized {
		return fmt.Errorf("populate: table already %s", q.state)
	}
	if len(ids) == 0 {
		return ErrNoEligibleNodes
	}
	for _, id := range ids {
		if _, ok := q.values[id]; ok {
			continue
		}
		q.values[id] = 0
		q.ids = append(q.ids, id)
	}
	sort.Slice(q.ids, func(i, j int) bool { return q.ids[i] < q.ids[j] })
	q.state = TableTraining
	return nil
}

// Update applies the constant-target rule Q[id] ← Q[id] + α(reward − Q[id]).
// There is no discounted next-state term: each decision is a single step.
func (q *QTable) Update(id NodeID, reward, alpha float64) error {
	switch q.state {
	case TableFrozen:
		return ErrTableFrozen
	case TableUninitialized:
		return fmt.Errorf("update: %w", ErrNoEligibleNodes)
	}
	old, ok := q.values[id]
	if !ok {
		return fmt.Errorf("update node %d: %w", id, ErrUnknownNode)
	}
	q.values[id] = old + alpha*(reward-old)
	q.updates++
	return nil
}

// Freeze ends training. Further updates fail with ErrTableFrozen.
func (q *QTable) Freeze() {
	q.state = TableFrozen
}

// State returns the lifecycle state.
func (q *QTable) State() TableState {
	return q.state
}

// Best returns the node with the highest value.
// Ties are broken by lowest node id, so the result never depends on map order.
func (q *QTable) Best() (NodeID, error) {
	if len(q.ids) == 0 {
		return 0, ErrNoEligibleNodes
	}
	best := q.ids[0]
	bestValue := q.values[best]
	for _, id := range q.ids[1:] {
		if v := q.values[id]; v > bestValue {
			best, bestValue = id, v
		}
	}
	return best, nil
}

// Value returns the learned value of id.
func (q *QTable) Value(id NodeID) (float64, bool) {
	v, ok := q.values[id]
	return v, ok
}

// NodeIDs returns the action set in ascending id order. The slice is a copy.
func (q *QTable) NodeIDs() []NodeID {
	return append([]NodeID(nil), q.ids...)
}

// Len returns the number of entries.
func (q *QTable) Len() int {
	return len(q.ids)
}

// Updates returns the number of applied updates.
func (q *QTable) Updates() int {
	return q.updates
}

// Snapshot returns a copy of all values.
func (q *QTable) Snapshot() map[NodeID]float64 {
	out := make(map[NodeID]float64, len(q.values))
	for id, v := range q.values {
		out[id] = v
	}
	return out
}
