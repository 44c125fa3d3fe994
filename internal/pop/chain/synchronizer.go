// Package chain validates, stores and reconciles the reference-chain header chain.
package chain

import (
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/pkg/event"
)

// Reorg describes a replaced suffix of the best chain. Added holds only the
// blocks that were accepted.
type Reorg struct {
	Removed []model.ChainBlock
	Added   []model.ChainBlock
}

// ReconcileResult reports how many added blocks were accepted and the
// error that stopped the rest, if any.
type ReconcileResult struct {
	Added int
	Err   error
}

type addResult int

const (
	resultAccepted addResult = iota
	resultDuplicate
)

// Synchronizer maintains a validated header chain. Add and Reconcile must be
// called from a single goroutine; queries are safe from any goroutine.
type Synchronizer struct {
	params  *Params
	store   BlockStore
	metrics Metrics
	logger  *zap.Logger

	head atomic.Pointer[model.StoredBlock]

	newBlock    *event.Registry[model.ChainBlock]
	reorganized *event.Registry[Reorg]
}

// NewSynchronizer wires a Synchronizer. Notifications are dispatched through exec.
func NewSynchronizer(params *Params, store BlockStore, metrics Metrics, logger *zap.Logger, exec event.Executor) (*Synchronizer, error) {
	if params == nil {
		return nil, errors.New("chain params are required")
	}
	if store == nil {
		return nil, errors.New("block store is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Synchronizer{
		params:      params,
		store:       store,
		metrics:     metrics,
		logger:      logger.With(zap.String("network", string(params.Network))),
		newBlock:    event.NewRegistry[model.ChainBlock](exec),
		reorganized: event.NewRegistry[Reorg](exec),
	}

	if hs, ok := store.(HeadStore); ok {
		head, err := hs.Head()
		if err != nil {
			return nil, fmt.Errorf("load chain head: %w", err)
		}
		if head != nil {
			s.head.Store(head)
			metrics.SetHead(head.Height())
			s.logger.Info("chain head restored", zap.Int32("height", head.Height()), zap.Stringer("hash", head.Hash()))
		}
	}
	return s, nil
}

// Params returns the chain rules.
func (s *Synchronizer) Params() *Params {
	return s.params
}

// OnNewBlock registers fn for blocks accepted outside a reorganization.
func (s *Synchronizer) OnNewBlock(owner any, fn func(model.ChainBlock)) {
	s.newBlock.Register(owner, fn)
}

// OnReorganized registers fn for reorganizations.
func (s *Synchronizer) OnReorganized(owner any, fn func(Reorg)) {
	s.reorganized.Register(owner, fn)
}

// Unsubscribe drops every callback registered by owner.
func (s *Synchronizer) Unsubscribe(owner any) {
	s.newBlock.Remove(owner)
	s.reorganized.Remove(owner)
}

// ChainHead returns the current best block, or nil before the first Add.
func (s *Synchronizer) ChainHead() *model.StoredBlock {
	return s.head.Load()
}

// Get returns the stored block with hash, or nil.
func (s *Synchronizer) Get(hash chainhash.Hash) (*model.StoredBlock, error) {
	block, err := s.store.Block(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: get block %s: %w", ErrStoreIO, hash, err)
	}
	return block, nil
}

// GetByHeight returns the best chain block at height, or nil.
func (s *Synchronizer) GetByHeight(height int32) (*model.StoredBlock, error) {
	hash, ok, err := s.store.BestHash(height)
	if err != nil {
		return nil, fmt.Errorf("%w: best hash at %d: %w", ErrStoreIO, height, err)
	}
	if !ok {
		return nil, nil
	}
	return s.Get(hash)
}

// Add validates block and makes it the chain head.
func (s *Synchronizer) Add(block model.ChainBlock) error {
	res, err := s.observedAdd(&block)
	if err != nil {
		return err
	}
	if res == resultAccepted {
		s.newBlock.Emit(block)
	}
	return nil
}

// Reconcile rewinds the head below removed, then adds each of added in
// order, stopping at the first failure. A reorganization notification is
// emitted whenever removed is non-empty.
func (s *Synchronizer) Reconcile(removed, added []model.ChainBlock) ReconcileResult {
	if len(removed) > 0 {
		if err := s.rewind(removed); err != nil {
			s.logger.Warn("rewind before reconcile failed", zap.Error(err))
		}
	}

	var res ReconcileResult
	accepted := make([]model.ChainBlock, 0, len(added))
	for _, block := range added {
		r, err := s.observedAdd(&block)
		if err != nil {
			res.Err = fmt.Errorf("reconcile block at height %d: %w", block.Height, err)
			break
		}
		res.Added++
		accepted = append(accepted, block)
		if len(removed) == 0 && r == resultAccepted {
			s.newBlock.Emit(block)
		}
	}

	if len(removed) > 0 {
		s.logger.Info("chain reorganized",
			zap.Int("removed", len(removed)),
			zap.Int("added", len(accepted)),
			zap.Error(res.Err),
		)
		s.reorganized.Emit(Reorg{Removed: removed, Added: accepted})
	}
	return res
}

// observedAdd records the outcome of add. On success block carries its
// computed hash.
func (s *Synchronizer) observedAdd(block *model.ChainBlock) (res addResult, err error) {
	started := time.Now()
	defer func() {
		outcome := Reason(err)
		if err == nil && res == resultDuplicate {
			outcome = "duplicate"
		}
		s.metrics.ObserveAdd(outcome, started)
	}()

	res, err = s.add(block)
	if err != nil {
		s.logger.Debug("block rejected",
			zap.Int32("height", block.Height),
			zap.Stringer("hash", block.Hash),
			zap.Error(err),
		)
	}
	return res, err
}

func (s *Synchronizer) add(block *model.ChainBlock) (addResult, error) {
	hash, err := s.checkHeader(*block)
	if err != nil {
		return 0, err
	}
	block.Hash = hash
	header := block.Header()

	empty, err := s.store.Empty()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if empty {
		return resultAccepted, s.connect(&model.StoredBlock{
			Block: header,
			Work:  blockchain.CalcWork(block.Difficulty),
		})
	}

	existing, err := s.store.Block(hash)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if existing != nil {
		return resultDuplicate, nil
	}

	parent, err := s.store.BlockByReference(block.PreviousBlock)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if parent == nil {
		return 0, fmt.Errorf("%w: previous block %x of %s is not stored", ErrUnknownPrevious, block.PreviousBlock, hash)
	}
	if parent.Height()+1 != block.Height {
		return 0, fmt.Errorf("%w: block %s at height %d extends parent at height %d", ErrBadHeight, hash, block.Height, parent.Height())
	}

	ancestors, err := s.ancestors(parent, s.contextDepth(block.Height))
	if err != nil {
		return 0, err
	}
	if err := s.checkKeystones(*block, ancestors); err != nil {
		return 0, err
	}
	if err := s.checkMedianTime(*block, ancestors); err != nil {
		return 0, err
	}
	if err := s.checkDifficulty(*block, ancestors); err != nil {
		return 0, err
	}

	return resultAccepted, s.connect(&model.StoredBlock{
		Block: header,
		Work:  new(big.Int).Add(parent.Work, blockchain.CalcWork(block.Difficulty)),
	})
}

// connect stores block and makes it the head unconditionally. Callers feed
// blocks in best chain order so no work comparison is done here.
func (s *Synchronizer) connect(block *model.StoredBlock) error {
	if err := s.store.Put(block); err != nil {
		return fmt.Errorf("%w: put block %s: %w", ErrStoreIO, block.Hash(), err)
	}
	return s.setHead(block)
}

// setHead points the height index at block's chain and publishes block as head.
func (s *Synchronizer) setHead(block *model.StoredBlock) error {
	if err := s.store.TruncateBest(block.Height()); err != nil {
		return fmt.Errorf("%w: truncate best chain: %w", ErrStoreIO, err)
	}

	for cur := block; cur != nil; {
		hash, ok, err := s.store.BestHash(cur.Height())
		if err != nil {
			return fmt.Errorf("%w: best hash at %d: %w", ErrStoreIO, cur.Height(), err)
		}
		if ok && hash == cur.Hash() {
			break
		}
		if err := s.store.SetBest(cur.Height(), cur.Hash()); err != nil {
			return fmt.Errorf("%w: set best at %d: %w", ErrStoreIO, cur.Height(), err)
		}
		if cur, err = s.store.BlockByReference(cur.Block.PreviousBlock); err != nil {
			return fmt.Errorf("%w: %w", ErrStoreIO, err)
		}
	}

	s.head.Store(block)
	s.metrics.SetHead(block.Height())
	return nil
}

// rewind moves the head to the parent of the lowest removed block.
func (s *Synchronizer) rewind(removed []model.ChainBlock) error {
	lowest := removed[0]
	for _, b := range removed[1:] {
		if b.Height < lowest.Height {
			lowest = b
		}
	}

	fork, err := s.store.BlockByReference(lowest.PreviousBlock)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if fork == nil {
		return fmt.Errorf("%w: fork point below height %d is not stored", ErrUnknownPrevious, lowest.Height)
	}
	return s.setHead(fork)
}

// ancestors returns up to n blocks starting at parent and walking back.
// The walk stops early at the oldest stored block.
func (s *Synchronizer) ancestors(parent *model.StoredBlock, n int) ([]*model.StoredBlock, error) {
	out := make([]*model.StoredBlock, 0, n)
	for cur := parent; cur != nil && len(out) < n; {
		out = append(out, cur)
		next, err := s.store.BlockByReference(cur.Block.PreviousBlock)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreIO, err)
		}
		if next != nil && next.Height() != cur.Height()-1 {
			break
		}
		cur = next
	}
	return out, nil
}
