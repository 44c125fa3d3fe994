// Package tracker keeps reorg-aware confirmation depth and merkle proofs for
// wallet transactions.
package tracker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/merkle"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/pkg/event"
)

// Tracker follows wallet transactions through the best chain. Blocks must be
// delivered one at a time; queries are safe from any goroutine.
type Tracker struct {
	hasher  merkle.Hasher
	metrics Metrics
	logger  *zap.Logger
	exec    event.Executor

	mu        sync.RWMutex
	addresses map[string]struct{}
	txs       map[chainhash.Hash]*model.WalletTransaction
	store     Store

	listenersMu sync.Mutex
	listeners   map[chainhash.Hash]*event.Registry[model.TransactionMeta]
}

// New constructs a Tracker. State changes are dispatched through exec.
func New(hasher merkle.Hasher, metrics Metrics, logger *zap.Logger, exec event.Executor) (*Tracker, error) {
	if metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if hasher == nil {
		hasher = merkle.DoubleSHA256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		hasher:    hasher,
		metrics:   metrics,
		logger:    logger,
		exec:      exec,
		addresses: make(map[string]struct{}),
		txs:       make(map[chainhash.Hash]*model.WalletTransaction),
		listeners: make(map[chainhash.Hash]*event.Registry[model.TransactionMeta]),
	}, nil
}

// Track makes transactions touching address relevant.
func (t *Tracker) Track(address string) {
	t.mu.Lock()
	t.addresses[address] = struct{}{}
	t.mu.Unlock()
}

// Commit registers a broadcast transaction as pending. Already known
// transactions keep their state.
func (t *Tracker) Commit(tx model.Transaction) {
	t.mu.Lock()
	wtx, ok := t.txs[tx.ID]
	if !ok {
		wtx = newWalletTransaction(tx)
		t.txs[tx.ID] = wtx
	}
	var changes []model.TransactionMeta
	if wtx.Meta.State == model.StateUnknown {
		wtx.Meta.State = model.StatePending
		changes = append(changes, wtx.Meta.Clone())
	}
	t.persistLocked(changes)
	tracked := len(t.txs)
	t.mu.Unlock()

	t.metrics.SetTracked(tracked)
	t.notify(changes)
}

// OnNewBlock deepens confirmed transactions and confirms relevant ones found in block.
func (t *Tracker) OnNewBlock(block model.ChainBlock) {
	t.mu.Lock()
	changes := t.applyBlock(block)
	t.persistLocked(changes)
	tracked := len(t.txs)
	t.mu.Unlock()

	t.metrics.ObserveConfirmed(len(changes))
	t.metrics.SetTracked(tracked)
	t.notify(changes)
}

// OnReorg takes len(removed) confirmations from every confirmed transaction,
// demoting those left without any, then applies added in order.
func (t *Tracker) OnReorg(removed, added []model.ChainBlock) {
	t.mu.Lock()
	var changes []model.TransactionMeta
	demoted := 0
	for _, wtx := range t.txs {
		if wtx.Meta.State != model.StateConfirmed {
			continue
		}
		wtx.Meta.Depth -= len(removed)
		if wtx.Meta.Depth > 0 {
			continue
		}
		demote(wtx)
		demoted++
		changes = append(changes, wtx.Meta.Clone())
	}

	confirmed := 0
	for _, block := range added {
		c := t.applyBlock(block)
		confirmed += len(c)
		changes = append(changes, c...)
	}
	t.persistLocked(changes)
	tracked := len(t.txs)
	t.mu.Unlock()

	if demoted > 0 {
		t.logger.Info("transactions demoted by reorganization",
			zap.Int("removed_blocks", len(removed)),
			zap.Int("demoted", demoted),
		)
	}
	t.metrics.ObserveDemoted(demoted)
	t.metrics.ObserveConfirmed(confirmed)
	t.metrics.SetTracked(tracked)
	t.notify(changes)
}

// Load restores transactions kept in store and persists every later state
// change there. A stored confirmation counts only while its block is still
// on the best chain; the depth is recomputed from the current head. Load must
// run before blocks are delivered.
func (t *Tracker) Load(store Store, best BestChain) error {
	if store == nil || best == nil {
		return errors.New("store and best chain are required")
	}

	var loaded []*model.WalletTransaction
	err := store.ForEachTransaction(func(id chainhash.Hash, data []byte) error {
		wtx, err := unmarshalTransaction(data)
		if err != nil {
			t.logger.Warn("wallet transaction record skipped", zap.Stringer("tx", id), zap.Error(err))
			return nil
		}
		loaded = append(loaded, wtx)
		return nil
	})
	if err != nil {
		return fmt.Errorf("load wallet transactions: %w", err)
	}

	head := best.ChainHead()
	var demoted []model.TransactionMeta
	for _, wtx := range loaded {
		if wtx.Meta.State != model.StateConfirmed {
			continue
		}
		depth, err := depthOnBest(wtx.Meta, best, head)
		if err != nil {
			return err
		}
		if depth > 0 {
			wtx.Meta.Depth = depth
			continue
		}
		demote(wtx)
		demoted = append(demoted, wtx.Meta.Clone())
	}

	t.mu.Lock()
	t.store = store
	for _, wtx := range loaded {
		if _, ok := t.txs[wtx.Meta.TxID]; !ok {
			t.txs[wtx.Meta.TxID] = wtx
		}
	}
	t.persistLocked(demoted)
	tracked := len(t.txs)
	t.mu.Unlock()

	t.logger.Info("wallet transactions loaded", zap.Int("loaded", len(loaded)), zap.Int("demoted", len(demoted)))
	t.metrics.ObserveDemoted(len(demoted))
	t.metrics.SetTracked(tracked)
	return nil
}

// depthOnBest returns how deep the block recorded in meta is under head, or
// zero once that block has left the best chain.
func depthOnBest(meta model.TransactionMeta, best BestChain, head *model.StoredBlock) (int, error) {
	if head == nil || meta.AppearsInBestChainBlock == nil || meta.AppearsAtHeight > head.Height() {
		return 0, nil
	}
	stored, err := best.GetByHeight(meta.AppearsAtHeight)
	if err != nil {
		return 0, fmt.Errorf("best block at height %d: %w", meta.AppearsAtHeight, err)
	}
	if stored == nil || stored.Hash() != *meta.AppearsInBestChainBlock {
		return 0, nil
	}
	return int(head.Height()-meta.AppearsAtHeight) + 1, nil
}

// persistLocked writes the transactions named by changes. Store failures are
// logged; the in-memory state stays authoritative until the next restart.
func (t *Tracker) persistLocked(changes []model.TransactionMeta) {
	if t.store == nil {
		return
	}
	for _, meta := range changes {
		wtx, ok := t.txs[meta.TxID]
		if !ok {
			continue
		}
		if err := t.store.PutTransaction(meta.TxID, marshalTransaction(wtx)); err != nil {
			t.logger.Error("wallet transaction not persisted", zap.Stringer("tx", meta.TxID), zap.Error(err))
		}
	}
}

func demote(wtx *model.WalletTransaction) {
	wtx.Meta.State = model.StatePending
	wtx.Meta.Depth = 0
	wtx.Meta.AppearsInBestChainBlock = nil
	wtx.Meta.AppearsAtHeight = 0
	wtx.MerklePath = nil
}

func (t *Tracker) applyBlock(block model.ChainBlock) []model.TransactionMeta {
	for _, wtx := range t.txs {
		if wtx.Meta.State == model.StateConfirmed {
			wtx.Meta.Depth++
		}
	}

	var (
		changes []model.TransactionMeta
		ids     []chainhash.Hash
	)
	for i, tx := range block.Transactions {
		if !t.relevant(tx) {
			continue
		}
		wtx, ok := t.txs[tx.ID]
		if !ok {
			wtx = newWalletTransaction(tx)
			t.txs[tx.ID] = wtx
		}
		wtx.Meta.AppearsInBlocks[block.Hash] = struct{}{}
		if wtx.Meta.State == model.StateConfirmed {
			continue
		}

		if ids == nil {
			ids = block.TransactionIDs()
		}
		path, err := t.hasher.Path(ids, i)
		if err != nil {
			t.logger.Error("merkle path not built", zap.Stringer("tx", tx.ID), zap.Error(err))
			continue
		}

		hash := block.Hash
		wtx.MerklePath = &path
		wtx.Meta.State = model.StateConfirmed
		wtx.Meta.Depth = 1
		wtx.Meta.AppearsInBestChainBlock = &hash
		wtx.Meta.AppearsAtHeight = block.Height
		changes = append(changes, wtx.Meta.Clone())
	}
	return changes
}

func (t *Tracker) relevant(tx model.Transaction) bool {
	if _, ok := t.txs[tx.ID]; ok {
		return true
	}
	for _, address := range tx.Addresses() {
		if _, ok := t.addresses[address]; ok {
			return true
		}
	}
	return false
}

// Confirmations returns the depth of txID, or false if it is not tracked.
func (t *Tracker) Confirmations(txID chainhash.Hash) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	wtx, ok := t.txs[txID]
	if !ok {
		return 0, false
	}
	return wtx.Meta.Depth, true
}

// IsConfirmed reports whether txID is confirmed at least threshold deep.
func (t *Tracker) IsConfirmed(txID chainhash.Hash, threshold int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	wtx, ok := t.txs[txID]
	return ok && wtx.Meta.State == model.StateConfirmed && wtx.Meta.Depth >= threshold
}

// Transaction returns a copy of the tracked transaction.
func (t *Tracker) Transaction(txID chainhash.Hash) (model.WalletTransaction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	wtx, ok := t.txs[txID]
	if !ok {
		return model.WalletTransaction{}, false
	}
	return wtx.Clone(), true
}

// Subscribe registers fn for state changes of txID.
func (t *Tracker) Subscribe(txID chainhash.Hash, owner any, fn func(model.TransactionMeta)) {
	t.listenersMu.Lock()
	defer t.listenersMu.Unlock()
	r, ok := t.listeners[txID]
	if !ok {
		r = event.NewRegistry[model.TransactionMeta](t.exec)
		t.listeners[txID] = r
	}
	r.Register(owner, fn)
}

// Unsubscribe drops owner's callbacks for txID.
func (t *Tracker) Unsubscribe(txID chainhash.Hash, owner any) {
	t.listenersMu.Lock()
	defer t.listenersMu.Unlock()
	r, ok := t.listeners[txID]
	if !ok {
		return
	}
	r.Remove(owner)
	if r.Len() == 0 {
		delete(t.listeners, txID)
	}
}

func (t *Tracker) notify(changes []model.TransactionMeta) {
	for _, meta := range changes {
		t.listenersMu.Lock()
		r := t.listeners[meta.TxID]
		t.listenersMu.Unlock()
		if r != nil {
			r.Emit(meta)
		}
	}
}

func newWalletTransaction(tx model.Transaction) *model.WalletTransaction {
	return &model.WalletTransaction{
		Transaction: tx,
		Meta: model.TransactionMeta{
			TxID:            tx.ID,
			AppearsInBlocks: make(map[chainhash.Hash]struct{}),
		},
	}
}
