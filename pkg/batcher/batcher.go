// Package batcher groups queued items into rate limited flushes.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher has been stopped.
var ErrStopped = errors.New("batcher stopped")

// Config controls when a batch is flushed.
type Config struct {
	// Size flushes as soon as this many items are buffered.
	Size int
	// Interval flushes whatever is buffered this often.
	Interval time.Duration
	// RPS caps flushes per second.
	RPS int
}

func (c Config) withDefaults() Config {
	if c.Size < 1 {
		c.Size = 100
	}
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.RPS < 1 {
		c.RPS = 10
	}
	return c
}

// FlushFunc persists one batch. The slice is owned by the callee.
type FlushFunc[T any] func(ctx context.Context, items []T) error

// Batcher queues items and hands them to a FlushFunc in groups.
type Batcher[T any] struct {
	cfg     Config
	flushFn FlushFunc[T]
	queue   chan T
	limiter ratelimit.Limiter
	logger  *zap.Logger

	pending []T

	done      chan struct{}
	closeOnce sync.Once
	running   sync.WaitGroup
}

// New constructs a Batcher. Zero Config fields fall back to defaults.
func New[T any](logger *zap.Logger, flushFn FlushFunc[T], cfg Config) *Batcher[T] {
	cfg = cfg.withDefaults()
	return &Batcher[T]{
		cfg:     cfg,
		flushFn: flushFn,
		queue:   make(chan T, 2*cfg.Size),
		limiter: ratelimit.New(cfg.RPS),
		logger:  logger,
		pending: make([]T, 0, cfg.Size),
		done:    make(chan struct{}),
	}
}

// Start launches the flushing loop. Canceling ctx behaves like Stop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.running.Add(1)
	go func() {
		defer b.running.Done()
		b.loop(ctx)
	}()
}

// Stop flushes everything already queued and waits for the loop to exit.
// Repeated calls are no-ops.
func (b *Batcher[T]) Stop() {
	b.closeOnce.Do(func() { close(b.done) })
	b.running.Wait()
}

// Add queues an item, blocking while the queue is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	if b.stopped() {
		return ErrStopped
	}
	select {
	case b.queue <- item:
		return nil
	case <-b.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Batcher[T]) stopped() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

func (b *Batcher[T]) loop(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case item := <-b.queue:
			b.push(ctx, item)
		case <-ticker.C:
			b.flush(ctx)
		case <-b.done:
			b.drain(context.WithoutCancel(ctx))
			return
		case <-ctx.Done():
			b.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (b *Batcher[T]) push(ctx context.Context, item T) {
	b.pending = append(b.pending, item)
	if len(b.pending) >= b.cfg.Size {
		b.flush(ctx)
	}
}

// drain empties the queue with a context that outlives the loop's own.
func (b *Batcher[T]) drain(ctx context.Context) {
	for {
		select {
		case item := <-b.queue:
			b.push(ctx, item)
		default:
			b.flush(ctx)
			return
		}
	}
}

func (b *Batcher[T]) flush(ctx context.Context) {
	if len(b.pending) == 0 {
		return
	}
	batch := b.pending
	b.pending = make([]T, 0, b.cfg.Size)

	b.limiter.Take()
	if err := b.flushFn(ctx, batch); err != nil {
		b.logger.Error("batch dropped", zap.Int("items", len(batch)), zap.Error(err))
		return
	}
	b.logger.Debug("batch flushed", zap.Int("items", len(batch)))
}
