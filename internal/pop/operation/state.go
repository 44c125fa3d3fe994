package operation

import (
	"github.com/iotexproject/go-fsm"
)

// State is a stage of the endorsement pipeline.
type State string

const (
	StateInitial                State = "INITIAL"
	StateInstruction            State = "INSTRUCTION"
	StateEndorsementTransaction State = "ENDORSEMENT_TRANSACTION"
	StateConfirmed              State = "CONFIRMED"
	StateBlockOfProof           State = "BLOCK_OF_PROOF"
	StateTransactionProved      State = "TRANSACTION_PROVED"
	StateKeystoneOfProof        State = "KEYSTONE_OF_PROOF"
	StatePublications           State = "PUBLICATIONS"
	StateSubmittedPopData       State = "SUBMITTED_POP_DATA"
	StateAltTxConfirmed         State = "ALT_TX_CONFIRMED"
	StateAltBlockConfirmed      State = "ALT_BLOCK_CONFIRMED"
	StateCompleted              State = "COMPLETED"
	StateFailed                 State = "FAILED"

	// stateNonTerminal is reported as the expected state when a terminal
	// operation is asked to fail.
	stateNonTerminal State = "NON_TERMINAL"
)

// pipeline lists the stages in the only order they may be reached.
var pipeline = []State{
	StateInitial,
	StateInstruction,
	StateEndorsementTransaction,
	StateConfirmed,
	StateBlockOfProof,
	StateTransactionProved,
	StateKeystoneOfProof,
	StatePublications,
	StateSubmittedPopData,
	StateAltTxConfirmed,
	StateAltBlockConfirmed,
	StateCompleted,
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Order returns the position of s in the pipeline, or -1 for states outside it.
func (s State) Order() int {
	for i, p := range pipeline {
		if p == s {
			return i
		}
	}
	return -1
}

// Status summarizes an operation for listing.
type Status int

const (
	StatusUnknown Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusCompleted:
		return "COMPLETED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// transition is the fsm event moving an operation into to.
type transition struct {
	to State
}

func (e transition) Type() fsm.EventType {
	return fsm.EventType(e.to)
}

func goTo(s State) fsm.Transition {
	return func(fsm.Event) (fsm.State, error) {
		return fsm.State(s), nil
	}
}

func newMachine() (fsm.FSM, error) {
	b := fsm.NewBuilder().AddInitialState(fsm.State(StateInitial))
	for _, s := range pipeline[1:] {
		b.AddStates(fsm.State(s))
	}
	b.AddStates(fsm.State(StateFailed))

	for i := 1; i < len(pipeline); i++ {
		to := pipeline[i]
		b.AddTransition(fsm.State(pipeline[i-1]), fsm.EventType(to), goTo(to), []fsm.State{fsm.State(to)})
	}
	for _, s := range pipeline[:len(pipeline)-1] {
		b.AddTransition(fsm.State(s), fsm.EventType(StateFailed), goTo(StateFailed), []fsm.State{fsm.State(StateFailed)})
	}
	return b.Build()
}
