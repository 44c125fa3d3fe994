// Package archive copies accepted blocks and operation history into the
// analytics store in batches.
package archive

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/chain"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
	"github.com/goodnatureofminers/popminer-backend/pkg/batcher"
)

// Archiver subscribes to chain and operation events and writes them out
// through two batchers.
type Archiver struct {
	logger  *zap.Logger
	network model.Network
	blocks  *batcher.Batcher[model.ArchivedBlock]
	changes *batcher.Batcher[model.OperationChange]

	mu  sync.RWMutex
	ctx context.Context
}

// New builds an Archiver writing to repo.
func New(repo Repository, network model.Network, cfg batcher.Config, logger *zap.Logger) (*Archiver, error) {
	if repo == nil {
		return nil, errors.New("archive repository is required")
	}
	return &Archiver{
		logger:  logger,
		network: network,
		blocks:  batcher.New(logger.Named("archive_blocks"), repo.InsertBlocks, cfg),
		changes: batcher.New(logger.Named("archive_operations"), repo.InsertOperationChanges, cfg),
		ctx:     context.Background(),
	}, nil
}

// Attach starts listening. Either source may be nil.
func (a *Archiver) Attach(chainEvents ChainEvents, operations OperationEvents) {
	if chainEvents != nil {
		chainEvents.OnNewBlock(a, a.onNewBlock)
		chainEvents.OnReorganized(a, a.onReorganized)
	}
	if operations != nil {
		operations.Subscribe(a, a.onOperationChange)
	}
}

// Detach stops listening.
func (a *Archiver) Detach(chainEvents ChainEvents, operations OperationEvents) {
	if chainEvents != nil {
		chainEvents.Unsubscribe(a)
	}
	if operations != nil {
		operations.Unsubscribe(a)
	}
}

// Run flushes batches until ctx is canceled, then writes out what is queued.
func (a *Archiver) Run(ctx context.Context) error {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	a.blocks.Start(ctx)
	a.changes.Start(ctx)
	<-ctx.Done()
	a.blocks.Stop()
	a.changes.Stop()
	return nil
}

func (a *Archiver) onNewBlock(b model.ChainBlock) {
	a.addBlock(a.archived(b, model.BlockBest))
}

func (a *Archiver) onReorganized(r chain.Reorg) {
	for _, b := range r.Removed {
		a.addBlock(a.archived(b, model.BlockOrphaned))
	}
	for _, b := range r.Added {
		a.addBlock(a.archived(b, model.BlockBest))
	}
}

func (a *Archiver) onOperationChange(n operation.Notification) {
	change := model.OperationChange{
		OperationID: n.Operation.ID(),
		ChainID:     n.Operation.ChainID(),
		State:       string(n.State),
		Status:      n.Status.String(),
		Text:        n.Change.Text,
		Timestamp:   n.Change.Timestamp,
	}
	if err := a.changes.Add(a.runContext(), change); err != nil {
		a.logger.Warn("operation change not archived", zap.String("operation", change.OperationID), zap.Error(err))
	}
}

func (a *Archiver) addBlock(b model.ArchivedBlock) {
	if err := a.blocks.Add(a.runContext(), b); err != nil {
		a.logger.Warn("block not archived", zap.String("hash", b.Hash), zap.Error(err))
	}
}

func (a *Archiver) archived(b model.ChainBlock, status model.BlockStatus) model.ArchivedBlock {
	return model.ArchivedBlock{
		Network:       a.network,
		Height:        b.Height,
		Hash:          b.Hash.String(),
		PreviousBlock: hex.EncodeToString(b.PreviousBlock),
		Timestamp:     b.Time(),
		Difficulty:    b.Difficulty,
		Status:        status,
	}
}

func (a *Archiver) runContext() context.Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ctx
}
