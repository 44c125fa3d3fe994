package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/clock"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/pkg/workerpool"
)

// ReferenceSyncConfig tunes the reference-chain poll loop.
type ReferenceSyncConfig struct {
	PollInterval time.Duration
	// BootstrapDepth is how many blocks below the remote tip an empty store starts from.
	BootstrapDepth int32
	Workers        int
}

func (c ReferenceSyncConfig) withDefaults() ReferenceSyncConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.BootstrapDepth < 1 {
		c.BootstrapDepth = defaultBootstrapDepth
	}
	if c.Workers < 1 {
		c.Workers = defaultWorkerCount
	}
	return c
}

// ReferenceSync keeps the synchronizer in step with a reference-chain node.
type ReferenceSync struct {
	logger      *zap.Logger
	gateway     ReferenceGateway
	sync        Synchronizer
	health      *Health
	metrics     PollMetrics
	cfg         ReferenceSyncConfig
	sleep       clock.SleepFunc
	blockSignal <-chan struct{}
}

// NewReferenceSync builds the loop. blockSignal may be nil; a receive on it
// cuts the current wait short.
func NewReferenceSync(
	gateway ReferenceGateway,
	sync Synchronizer,
	health *Health,
	metrics PollMetrics,
	cfg ReferenceSyncConfig,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*ReferenceSync, error) {
	if gateway == nil {
		return nil, errors.New("reference gateway is required")
	}
	if sync == nil {
		return nil, errors.New("synchronizer is required")
	}
	if metrics == nil {
		return nil, errors.New("reference sync metrics is required")
	}
	if health == nil {
		health = NewHealth("reference", defaultFailureThreshold)
	}
	return &ReferenceSync{
		logger:      logger,
		gateway:     gateway,
		sync:        sync,
		health:      health,
		metrics:     metrics,
		cfg:         cfg.withDefaults(),
		sleep:       clock.SleepWithContext,
		blockSignal: blockSignal,
	}, nil
}

// Health returns the loop's health flag.
func (s *ReferenceSync) Health() *Health {
	return s.health
}

// Run polls until the context is canceled.
func (s *ReferenceSync) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		started := time.Now()
		err := s.run(ctx)
		s.metrics.ObserveTick(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.health.Failure(err)
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.cfg.PollInterval))
		} else {
			s.health.Success()
		}

		if err := s.wait(ctx, s.cfg.PollInterval); err != nil {
			return err
		}
	}
}

func (s *ReferenceSync) run(ctx context.Context) error {
	head := s.sync.ChainHead()
	if head == nil {
		return s.bootstrap(ctx)
	}

	tip, err := s.gateway.LastBlock(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote tip: %w", err)
	}
	if tip.Hash == head.Hash() {
		s.logger.Debug("reference chain up to date", zap.Int32("height", head.Height()))
		return nil
	}

	removed, added, err := s.gateway.ChangesSince(ctx, head.Hash())
	if err != nil {
		return fmt.Errorf("fetch changes since %s: %w", head.Hash(), err)
	}
	if len(removed) == 0 && len(added) == 0 {
		return nil
	}

	res := s.sync.Reconcile(removed, added)
	s.logger.Info("reference chain reconciled",
		zap.Int("removed", len(removed)),
		zap.Int("added", res.Added),
		zap.Int("offered", len(added)),
	)
	if res.Err != nil {
		return fmt.Errorf("reconcile: %w", res.Err)
	}
	return nil
}

// bootstrap fills an empty store with the most recent BootstrapDepth blocks.
func (s *ReferenceSync) bootstrap(ctx context.Context) error {
	tip, err := s.gateway.LastBlock(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote tip: %w", err)
	}

	start := tip.Height - s.cfg.BootstrapDepth + 1
	if start < 0 {
		start = 0
	}
	heights := make([]int32, 0, tip.Height-start)
	for h := start; h < tip.Height; h++ {
		heights = append(heights, h)
	}

	s.logger.Info("bootstrapping reference chain", zap.Int32("from", start), zap.Int32("to", tip.Height))
	blocks, err := workerpool.Map(ctx, s.cfg.Workers, heights, func(ctx context.Context, h int32) (model.ChainBlock, error) {
		b, err := s.gateway.BlockByHeight(ctx, h)
		if err != nil {
			return model.ChainBlock{}, fmt.Errorf("fetch block at height %d: %w", h, err)
		}
		return b, nil
	})
	if err != nil {
		return err
	}
	blocks = append(blocks, tip)

	for _, b := range blocks {
		if err := s.sync.Add(b); err != nil {
			return fmt.Errorf("bootstrap block at height %d: %w", b.Height, err)
		}
	}
	return nil
}

func (s *ReferenceSync) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}
