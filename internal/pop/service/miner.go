package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/clock"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/chain"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
	"github.com/goodnatureofminers/popminer-backend/pkg/event"
	"github.com/goodnatureofminers/popminer-backend/pkg/workerpool"
)

var (
	// ErrUnknownChain is returned for SI chains the miner has no gateway for.
	ErrUnknownChain = errors.New("unknown alt chain")
	// ErrOperationNotFound is returned for ids the miner does not hold.
	ErrOperationNotFound = errors.New("operation not found")
	// ErrProofMismatch is returned when the wallet's merkle path does not
	// lead to the block of proof's merkle root.
	ErrProofMismatch = errors.New("merkle path does not match block of proof")
)

// MinerConfig tunes the operation driver.
type MinerConfig struct {
	PollInterval time.Duration
	Workers      int
	// PayoutAddress is the SI chain address endorsement rewards are paid to.
	PayoutAddress string
	// PayoutDelay is how many SI blocks after the endorsed one the reward is paid in.
	PayoutDelay         int32
	AltConfirmations    int64
	ConfirmationTimeout time.Duration
	PublicationTimeout  time.Duration
	AltTimeout          time.Duration
}

func (c MinerConfig) withDefaults() MinerConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Workers < 1 {
		c.Workers = defaultWorkerCount
	}
	if c.PayoutDelay < 1 {
		c.PayoutDelay = defaultPayoutDelay
	}
	if c.AltConfirmations < 1 {
		c.AltConfirmations = defaultAltConfirmations
	}
	if c.ConfirmationTimeout <= 0 {
		c.ConfirmationTimeout = defaultStageTimeout
	}
	if c.PublicationTimeout <= 0 {
		c.PublicationTimeout = defaultStageTimeout
	}
	if c.AltTimeout <= 0 {
		c.AltTimeout = defaultStageTimeout
	}
	return c
}

// AltChain couples an SI chain gateway with the source of its best height.
// Heights may be nil, in which case the gateway is asked directly.
type AltChain struct {
	Gateway AltGateway
	Heights HeightSource
}

// Miner creates endorsement operations and drives them through their stages.
type Miner struct {
	logger    *zap.Logger
	cfg       MinerConfig
	params    *chain.Params
	reference ReferenceGateway
	alts      map[string]AltChain
	sync      Synchronizer
	tracker   Tracker
	store     OperationStore
	metrics   OperationMetrics
	clock     clock.Clock
	exec      event.Executor
	sleep     clock.SleepFunc
	newID     func() (string, error)

	mu         sync.RWMutex
	operations map[string]*operation.Operation
	corrupted  map[string]error

	changed *event.Registry[operation.Notification]
}

// NewMiner wires a Miner. Operation notifications are dispatched through exec.
func NewMiner(
	cfg MinerConfig,
	params *chain.Params,
	reference ReferenceGateway,
	alts []AltChain,
	sync Synchronizer,
	tracker Tracker,
	store OperationStore,
	metrics OperationMetrics,
	logger *zap.Logger,
	exec event.Executor,
) (*Miner, error) {
	switch {
	case params == nil:
		return nil, errors.New("chain params are required")
	case reference == nil:
		return nil, errors.New("reference gateway is required")
	case sync == nil:
		return nil, errors.New("synchronizer is required")
	case tracker == nil:
		return nil, errors.New("tracker is required")
	case store == nil:
		return nil, errors.New("operation store is required")
	case metrics == nil:
		return nil, errors.New("operation metrics is required")
	}

	m := &Miner{
		logger:     logger,
		cfg:        cfg.withDefaults(),
		params:     params,
		reference:  reference,
		alts:       make(map[string]AltChain, len(alts)),
		sync:       sync,
		tracker:    tracker,
		store:      store,
		metrics:    metrics,
		clock:      clock.Real{},
		exec:       exec,
		sleep:      clock.SleepWithContext,
		newID:      randomID,
		operations: make(map[string]*operation.Operation),
		corrupted:  make(map[string]error),
		changed:    event.NewRegistry[operation.Notification](nil),
	}
	for _, alt := range alts {
		if alt.Gateway == nil {
			return nil, errors.New("alt gateway is required")
		}
		id := alt.Gateway.ChainID()
		if _, ok := m.alts[id]; ok {
			return nil, fmt.Errorf("alt chain %s configured twice", id)
		}
		m.alts[id] = alt
	}
	return m, nil
}

// Subscribe registers fn for transitions of every operation.
func (m *Miner) Subscribe(owner any, fn func(operation.Notification)) {
	m.changed.Register(owner, fn)
}

// Unsubscribe drops owner's callbacks.
func (m *Miner) Unsubscribe(owner any) {
	m.changed.Remove(owner)
}

// Mine starts an endorsement of the SI block at height. A height below 1
// endorses the chain's current best block.
func (m *Miner) Mine(ctx context.Context, chainID string, height int32) (*operation.Operation, error) {
	alt, ok := m.alts[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChain, chainID)
	}
	if height < 1 {
		best, err := m.bestHeight(ctx, alt)
		if err != nil {
			return nil, err
		}
		height = best
	}

	id, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("generate operation id: %w", err)
	}
	op, err := operation.New(id, chainID, m.operationOptions()...)
	if err != nil {
		return nil, err
	}
	m.add(op)
	m.persist(op)
	m.logger.Info("operation started", zap.String("operation", id), zap.String("chain", chainID), zap.Int32("height", height))

	instr, err := alt.Gateway.MiningInstruction(ctx, height)
	if err != nil {
		err = fmt.Errorf("fetch mining instruction at height %d: %w", height, err)
		if failErr := op.Fail(err.Error()); failErr != nil {
			m.logger.Error("fail operation", zap.String("operation", id), zap.Error(failErr))
		}
		return op, err
	}
	if err := op.SetMiningInstruction(instr); err != nil {
		return op, err
	}
	return op, nil
}

// Cancel fails a running operation.
func (m *Miner) Cancel(id, reason string) error {
	op, ok := m.Operation(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	return op.Fail(reason)
}

// Operation returns the operation with the given id.
func (m *Miner) Operation(id string) (*operation.Operation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	op, ok := m.operations[id]
	return op, ok
}

// Operations lists every operation, oldest first.
func (m *Miner) Operations() []*operation.Operation {
	m.mu.RLock()
	out := make([]*operation.Operation, 0, len(m.operations))
	for _, op := range m.operations {
		out = append(out, op)
	}
	m.mu.RUnlock()

	created := make(map[*operation.Operation]time.Time, len(out))
	for _, op := range out {
		created[op] = op.Snapshot().CreatedAt
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := created[out[i]], created[out[j]]
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Corrupted returns the records Resume could not restore, keyed by id.
func (m *Miner) Corrupted() map[string]error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]error, len(m.corrupted))
	for id, err := range m.corrupted {
		out[id] = err
	}
	return out
}

// Resume loads every stored operation. Records that fail to decode or
// replay are skipped and reported through Corrupted.
func (m *Miner) Resume() error {
	restored := 0
	err := m.store.ForEach(func(id string, data []byte) error {
		op, err := m.restore(data)
		m.metrics.ObserveRestore(err)
		if err != nil {
			m.logger.Error("operation record corrupted, skipping", zap.String("operation", id), zap.Error(err))
			m.mu.Lock()
			m.corrupted[id] = err
			m.mu.Unlock()
			return nil
		}

		m.add(op)
		m.rewatch(op)
		restored++
		return nil
	})
	if err != nil {
		return fmt.Errorf("load operations: %w", err)
	}
	m.logger.Info("operations resumed", zap.Int("restored", restored), zap.Int("corrupted", len(m.Corrupted())))
	return nil
}

// rewatch hands the endorsement transaction of a running restored operation
// back to the tracker. Commit keeps any confirmation the tracker loaded from
// its own store and registers the transaction as pending otherwise, so later
// blocks containing it are recognised. An operation past confirmation whose
// transaction the tracker loaded as pending lost its block while the miner
// was down and fails like any other reorganization.
func (m *Miner) rewatch(op *operation.Operation) {
	s := op.Snapshot()
	if s.State.Terminal() {
		return
	}
	if s.EndorsementTxID != nil {
		wt, known := m.tracker.Transaction(*s.EndorsementTxID)
		if known && wt.Meta.State == model.StatePending && s.State.Order() > operation.StateEndorsementTransaction.Order() {
			m.logger.Info("endorsement left the best chain while stopped", zap.String("operation", s.ID))
			if err := op.Fail(operation.ReasonReorganized); err != nil {
				m.logger.Error("fail operation", zap.String("operation", s.ID), zap.Error(err))
			}
			return
		}
		m.tracker.Commit(model.Transaction{ID: *s.EndorsementTxID})
	}
	op.AttachTracker(m.tracker)
}

func (m *Miner) restore(data []byte) (*operation.Operation, error) {
	var rec operation.Record
	if err := rec.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	opts := []operation.Option{
		operation.WithClock(m.clock),
		operation.WithExecutor(m.exec),
		operation.WithSubscriber(m, m.onChange),
	}
	return operation.Restore(rec, m.params, opts...)
}

// Run advances running operations until the context is canceled.
func (m *Miner) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := m.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", m.cfg.PollInterval))
		}
		if err := m.sleep(ctx, m.cfg.PollInterval); err != nil {
			return err
		}
	}
}

func (m *Miner) run(ctx context.Context) error {
	running := m.running()
	m.metrics.SetRunning(len(running))
	if len(running) == 0 {
		return nil
	}
	return workerpool.ForEach(ctx, m.cfg.Workers, running, m.advance)
}

func (m *Miner) running() []*operation.Operation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*operation.Operation, 0, len(m.operations))
	for _, op := range m.operations {
		if !op.State().Terminal() {
			out = append(out, op)
		}
	}
	return out
}

func (m *Miner) operationOptions() []operation.Option {
	return []operation.Option{
		operation.WithClock(m.clock),
		operation.WithTracker(m.tracker),
		operation.WithExecutor(m.exec),
		operation.WithSubscriber(m, m.onChange),
	}
}

func (m *Miner) add(op *operation.Operation) {
	m.mu.Lock()
	m.operations[op.ID()] = op
	m.mu.Unlock()
}

func (m *Miner) onChange(n operation.Notification) {
	m.logger.Info("operation changed",
		zap.String("operation", n.Operation.ID()),
		zap.String("state", string(n.State)),
		zap.Stringer("status", n.Status),
		zap.String("change", n.Change.Text),
	)
	m.metrics.ObserveTransition(n.Operation.ChainID(), n.State)
	m.persist(n.Operation)
	m.changed.Emit(n)
}

func (m *Miner) persist(op *operation.Operation) {
	rec, err := op.Record(m.params)
	if err != nil {
		m.logger.Error("build operation record", zap.String("operation", op.ID()), zap.Error(err))
		return
	}
	data, err := rec.MarshalBinary()
	if err != nil {
		m.logger.Error("encode operation record", zap.String("operation", op.ID()), zap.Error(err))
		return
	}
	if err := m.store.Put(op.ID(), data); err != nil {
		m.logger.Error("store operation record", zap.String("operation", op.ID()), zap.Error(err))
	}
}

func (m *Miner) bestHeight(ctx context.Context, alt AltChain) (int32, error) {
	if alt.Heights != nil {
		if h, ok := alt.Heights.BestHeight(); ok {
			return h, nil
		}
	}
	h, err := alt.Gateway.BestBlockHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch %s best height: %w", alt.Gateway.ChainID(), err)
	}
	return h, nil
}

func randomID() (string, error) {
	b := make([]byte, operationIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
