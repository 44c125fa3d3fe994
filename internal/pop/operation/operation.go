// Package operation drives a single proof-of-proof endorsement through its
// pipeline stages.
package operation

import (
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/iotexproject/go-fsm"

	"github.com/goodnatureofminers/popminer-backend/internal/clock"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/pkg/event"
)

// Change is one entry of an operation's change history.
type Change struct {
	Text      string
	Timestamp time.Time
}

// Notification is emitted after every transition outside a restore.
type Notification struct {
	Operation *Operation
	State     State
	Status    Status
	Change    Change
}

// Snapshot is a copy of everything an operation has accumulated.
type Snapshot struct {
	ID                  string
	ChainID             string
	State               State
	Status              Status
	Instruction         *model.MiningInstruction
	EndorsementTxID     *chainhash.Hash
	BlockOfProof        *model.ChainBlock
	MerklePath          *model.MerklePath
	KeystoneOfProof     *model.ChainBlock
	Publications        []model.Publication
	ProofOfProofID      string
	AltEndorsementBlock string
	PayoutBlockHash     string
	PayoutAmount        int64
	FailedFrom          State
	FailureReason       string
	CreatedAt           time.Time
	History             []Change
}

// Option configures an Operation.
type Option func(*Operation)

// WithClock sets the clock used for history timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *Operation) { o.clock = c }
}

// WithTracker sets the tracker the endorsement transaction is watched with.
func WithTracker(t TransactionTracker) Option {
	return func(o *Operation) { o.tracker = t }
}

// WithExecutor sets how change notifications are dispatched.
func WithExecutor(exec event.Executor) Option {
	return func(o *Operation) { o.exec = exec }
}

// WithSubscriber registers fn for notifications before the operation is returned.
func WithSubscriber(owner any, fn func(Notification)) Option {
	return func(o *Operation) {
		o.pending = append(o.pending, func(r *event.Registry[Notification]) { r.Register(owner, fn) })
	}
}

// Operation is one endorsement. All mutation happens under mu; notifications
// are emitted after it is released.
type Operation struct {
	id      string
	chainID string
	clock   clock.Clock
	exec    event.Executor
	changed *event.Registry[Notification]
	pending []func(*event.Registry[Notification])

	mu        sync.Mutex
	machine   fsm.FSM
	status    Status
	tracker   TransactionTracker
	restoring bool
	createdAt time.Time

	instruction         *model.MiningInstruction
	endorsementTxID     *chainhash.Hash
	blockOfProof        *model.ChainBlock
	merklePath          *model.MerklePath
	keystoneOfProof     *model.ChainBlock
	publications        []model.Publication
	proofOfProofID      string
	altEndorsementBlock string
	payoutBlockHash     string
	payoutAmount        int64
	failedFrom          State
	failureReason       string
	history             []Change
}

// New creates a running operation in the initial state.
func New(id, chainID string, opts ...Option) (*Operation, error) {
	machine, err := newMachine()
	if err != nil {
		return nil, fmt.Errorf("build operation state machine: %w", err)
	}
	o := &Operation{
		id:      id,
		chainID: chainID,
		clock:   clock.Real{},
		machine: machine,
		status:  StatusRunning,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.changed = event.NewRegistry[Notification](o.exec)
	for _, register := range o.pending {
		register(o.changed)
	}
	o.pending = nil
	o.createdAt = o.now()
	return o, nil
}

func (o *Operation) ID() string      { return o.id }
func (o *Operation) ChainID() string { return o.chainID }

// State returns the current stage.
func (o *Operation) State() State {
	return State(o.machine.CurrentState())
}

// Status returns the summary status.
func (o *Operation) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Subscribe registers fn for transitions of this operation.
func (o *Operation) Subscribe(owner any, fn func(Notification)) {
	o.changed.Register(owner, fn)
}

// Unsubscribe drops owner's callbacks.
func (o *Operation) Unsubscribe(owner any) {
	o.changed.Remove(owner)
}

// Snapshot copies the accumulated state.
func (o *Operation) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Operation) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:                  o.id,
		ChainID:             o.chainID,
		State:               o.State(),
		Status:              o.status,
		ProofOfProofID:      o.proofOfProofID,
		AltEndorsementBlock: o.altEndorsementBlock,
		PayoutBlockHash:     o.payoutBlockHash,
		PayoutAmount:        o.payoutAmount,
		FailedFrom:          o.failedFrom,
		FailureReason:       o.failureReason,
		CreatedAt:           o.createdAt,
		History:             append([]Change(nil), o.history...),
	}
	if o.instruction != nil {
		v := o.instruction.Clone()
		s.Instruction = &v
	}
	if o.endorsementTxID != nil {
		v := *o.endorsementTxID
		s.EndorsementTxID = &v
	}
	if o.blockOfProof != nil {
		v := *o.blockOfProof
		s.BlockOfProof = &v
	}
	if o.merklePath != nil {
		v := o.merklePath.Clone()
		s.MerklePath = &v
	}
	if o.keystoneOfProof != nil {
		v := *o.keystoneOfProof
		s.KeystoneOfProof = &v
	}
	if o.publications != nil {
		s.Publications = append([]model.Publication(nil), o.publications...)
	}
	return s
}

// SetMiningInstruction moves INITIAL to INSTRUCTION.
func (o *Operation) SetMiningInstruction(instr model.MiningInstruction) error {
	return o.transition(StateInitial, StateInstruction, func() {
		v := instr.Clone()
		o.instruction = &v
	})
}

// SetTransaction moves INSTRUCTION to ENDORSEMENT_TRANSACTION and starts
// watching tx through the tracker.
func (o *Operation) SetTransaction(tx model.Transaction) error {
	if err := o.transition(StateInstruction, StateEndorsementTransaction, func() {
		id := tx.ID
		o.endorsementTxID = &id
	}); err != nil {
		return err
	}

	o.mu.Lock()
	tracker, restoring := o.tracker, o.restoring
	o.mu.Unlock()
	if tracker != nil && !restoring {
		tracker.Subscribe(tx.ID, o, o.onTransactionState)
	}
	return nil
}

// SetConfirmed moves ENDORSEMENT_TRANSACTION to CONFIRMED.
func (o *Operation) SetConfirmed() error {
	return o.transition(StateEndorsementTransaction, StateConfirmed, func() {})
}

// SetBlockOfProof moves CONFIRMED to BLOCK_OF_PROOF.
func (o *Operation) SetBlockOfProof(block model.ChainBlock) error {
	return o.transition(StateConfirmed, StateBlockOfProof, func() {
		header := block.Header()
		o.blockOfProof = &header
	})
}

// SetMerklePath moves BLOCK_OF_PROOF to TRANSACTION_PROVED.
func (o *Operation) SetMerklePath(path model.MerklePath) error {
	return o.transition(StateBlockOfProof, StateTransactionProved, func() {
		v := path.Clone()
		o.merklePath = &v
	})
}

// SetKeystoneOfProof moves TRANSACTION_PROVED to KEYSTONE_OF_PROOF.
func (o *Operation) SetKeystoneOfProof(block model.ChainBlock) error {
	return o.transition(StateTransactionProved, StateKeystoneOfProof, func() {
		header := block.Header()
		o.keystoneOfProof = &header
	})
}

// SetPublications moves KEYSTONE_OF_PROOF to PUBLICATIONS.
func (o *Operation) SetPublications(publications []model.Publication) error {
	return o.transition(StateKeystoneOfProof, StatePublications, func() {
		o.publications = append([]model.Publication{}, publications...)
	})
}

// SetProofOfProofID moves PUBLICATIONS to SUBMITTED_POP_DATA.
func (o *Operation) SetProofOfProofID(id string) error {
	return o.transition(StatePublications, StateSubmittedPopData, func() {
		o.proofOfProofID = id
	})
}

// SetAltTxConfirmed moves SUBMITTED_POP_DATA to ALT_TX_CONFIRMED.
func (o *Operation) SetAltTxConfirmed() error {
	return o.transition(StateSubmittedPopData, StateAltTxConfirmed, func() {})
}

// SetAltBlockConfirmed moves ALT_TX_CONFIRMED to ALT_BLOCK_CONFIRMED.
func (o *Operation) SetAltBlockConfirmed(blockHash string) error {
	return o.transition(StateAltTxConfirmed, StateAltBlockConfirmed, func() {
		o.altEndorsementBlock = blockHash
	})
}

// Complete moves ALT_BLOCK_CONFIRMED to COMPLETED. From any other state the
// operation is failed instead and an InvalidTransitionError is returned.
func (o *Operation) Complete(payoutBlockHash string, payoutAmount int64) error {
	err := o.transition(StateAltBlockConfirmed, StateCompleted, func() {
		o.payoutBlockHash = payoutBlockHash
		o.payoutAmount = payoutAmount
		o.status = StatusCompleted
	})
	if err == nil {
		o.detach()
		return nil
	}
	if IsInvalidTransition(err) {
		if failErr := o.Fail(fmt.Sprintf("cannot complete from state %s", o.State())); failErr != nil {
			return failErr
		}
	}
	return err
}

// Fail ends the operation from any non-terminal state and stops watching the
// endorsement transaction.
func (o *Operation) Fail(reason string) error {
	o.mu.Lock()
	current := o.State()
	if current.Terminal() {
		o.mu.Unlock()
		return &InvalidTransitionError{Expected: stateNonTerminal, Actual: current}
	}
	n, err := o.transitionLocked(current, StateFailed, func() {
		o.failedFrom = current
		o.failureReason = reason
		o.status = StatusFailed
	})
	o.mu.Unlock()
	if err != nil {
		return err
	}

	o.detach()
	o.notify(n)
	return nil
}

// AttachTracker watches the endorsement transaction with t when the
// operation is waiting on or past it. Restored operations need this.
func (o *Operation) AttachTracker(t TransactionTracker) {
	o.mu.Lock()
	o.tracker = t
	txID := o.endorsementTxID
	state := o.State()
	o.mu.Unlock()

	if t == nil || txID == nil || state.Terminal() {
		return
	}
	t.Subscribe(*txID, o, o.onTransactionState)
}

func (o *Operation) detach() {
	o.mu.Lock()
	tracker, txID, restoring := o.tracker, o.endorsementTxID, o.restoring
	o.mu.Unlock()
	if tracker != nil && txID != nil && !restoring {
		tracker.Unsubscribe(*txID, o)
	}
}

func (o *Operation) transition(expected, to State, apply func()) error {
	o.mu.Lock()
	n, err := o.transitionLocked(expected, to, apply)
	o.mu.Unlock()
	if err != nil {
		return err
	}
	o.notify(n)
	return nil
}

func (o *Operation) transitionLocked(expected, to State, apply func()) (*Notification, error) {
	if actual := o.State(); actual != expected {
		return nil, &InvalidTransitionError{Expected: expected, Actual: actual}
	}
	if err := o.machine.Handle(transition{to: to}); err != nil {
		return nil, fmt.Errorf("operation %s: %w", o.id, err)
	}
	apply()

	if o.restoring {
		return nil, nil
	}
	change := Change{Text: o.describeLocked(), Timestamp: o.now()}
	o.history = append(o.history, change)
	return &Notification{Operation: o, State: to, Status: o.status, Change: change}, nil
}

func (o *Operation) notify(n *Notification) {
	if n != nil {
		o.changed.Emit(*n)
	}
}

func (o *Operation) now() time.Time {
	return o.clock.Now().Truncate(time.Second)
}

func (o *Operation) describeLocked() string {
	state := o.State()
	switch state {
	case StateInstruction:
		return fmt.Sprintf("%s: endorse block at height %d", state, o.instruction.EndorsedBlockHeight)
	case StateEndorsementTransaction:
		return fmt.Sprintf("%s: submitted transaction %s", state, *o.endorsementTxID)
	case StateBlockOfProof:
		return fmt.Sprintf("%s: block %s at height %d", state, o.blockOfProof.Hash, o.blockOfProof.Height)
	case StateTransactionProved:
		return fmt.Sprintf("%s: merkle path %s", state, o.merklePath)
	case StateKeystoneOfProof:
		return fmt.Sprintf("%s: keystone %s at height %d", state, o.keystoneOfProof.Hash, o.keystoneOfProof.Height)
	case StatePublications:
		return fmt.Sprintf("%s: %d publications", state, len(o.publications))
	case StateSubmittedPopData:
		return fmt.Sprintf("%s: proof of proof %s", state, o.proofOfProofID)
	case StateAltBlockConfirmed:
		return fmt.Sprintf("%s: endorsement block %s", state, o.altEndorsementBlock)
	case StateCompleted:
		return fmt.Sprintf("%s: payout %d in block %s", state, o.payoutAmount, o.payoutBlockHash)
	case StateFailed:
		return fmt.Sprintf("%s: %s (from %s)", state, o.failureReason, o.failedFrom)
	default:
		return string(state)
	}
}
