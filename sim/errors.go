package sim

import "errors"

var (
	// ErrInvalidNodeConfig marks a node that lacks the bandwidth or compute
	// rate needed for cost estimation. The node is excluded, the run goes on.
	ErrInvalidNodeConfig = errors.New("invalid node config")

	// ErrNoEligibleNodes is returned when no node can be an offload target.
	ErrNoEligibleNodes = errors.New("no eligible nodes")

	// ErrAssignmentExhausted signals that round-robin cursor arithmetic produced
	// an out-of-range index. This is an internal invariant violation.
	ErrAssignmentExhausted = errors.New("assignment exhausted")

	// ErrTableFrozen is returned by updates to a frozen Q-table.
	ErrTableFrozen = errors.New("q-table is frozen")

	// ErrTableNotFrozen is returned when greedy placement reads a table that
	// is still being trained.
	ErrTableNotFrozen = errors.New("q-table is not frozen")

	// ErrUnknownNode is returned for node ids outside the action set.
	ErrUnknownNode = errors.New("unknown node")
)
