package types

import "fmt"

// Enum values for the worker mining state
type MiningState string

const (
	StateEmpty                MiningState = "Empty"
	StateFree                 MiningState = "Free"
	StatePendingSynchronizing MiningState = "PendingSynchronizing"
	StateSynchronizing        MiningState = "Synchronizing"
	StateServing              MiningState = "Serving"
	StateMiningPending        MiningState = "MiningPending"
	StateMining               MiningState = "Mining"
	StateMiningStopping       MiningState = "MiningStopping"
)

// MiningStateVariants lists the states in on-chain enum index order.
var MiningStateVariants = []MiningState{
	StateEmpty,
	StateFree,
	StatePendingSynchronizing,
	StateSynchronizing,
	StateServing,
	StateMiningPending,
	StateMining,
	StateMiningStopping,
}

func (s MiningState) String() string {
	return string(s)
}

// IsMining reports whether a worker in this state counts toward the round's
// online population.
func (s MiningState) IsMining() bool {
	return s == StateMining
}

func MiningStateFromIndex(idx byte) (MiningState, error) {
	if int(idx) >= len(MiningStateVariants) {
		return "", fmt.Errorf("invalid mining state index: %d", idx)
	}
	return MiningStateVariants[idx], nil
}
