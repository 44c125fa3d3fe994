package event

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Ordered runs tasks one at a time on a single goroutine in submission order.
// The queue is unbounded so tasks may submit further tasks without blocking.
type Ordered struct {
	logger *zap.Logger

	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}

	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once
}

// NewOrdered constructs an Ordered executor. Call Start before use.
func NewOrdered(logger *zap.Logger) *Ordered {
	return &Ordered{
		logger: logger,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
}

// Start launches the dispatch goroutine.
func (o *Ordered) Start(ctx context.Context) {
	o.wg.Add(1)
	go o.run(ctx)
}

// Stop drains queued tasks and waits for the dispatch goroutine to exit.
func (o *Ordered) Stop() {
	o.once.Do(func() {
		o.close()
		close(o.stop)
	})
	o.wg.Wait()
}

// Execute queues task. Tasks submitted after Stop, or after the Start
// context is canceled, are dropped.
func (o *Ordered) Execute(task func()) {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		o.logger.Debug("executor stopped, dropping task")
		return
	}
	o.queue = append(o.queue, task)
	o.mu.Unlock()

	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *Ordered) run(ctx context.Context) {
	defer o.wg.Done()

	for {
		o.drain()

		select {
		case <-ctx.Done():
			o.close()
			o.drain()
			return
		case <-o.stop:
			o.drain()
			return
		case <-o.wake:
		}
	}
}

// close rejects further tasks. Tasks queued before it still run.
func (o *Ordered) close() {
	o.mu.Lock()
	o.stopped = true
	o.mu.Unlock()
}

func (o *Ordered) drain() {
	for {
		o.mu.Lock()
		if len(o.queue) == 0 {
			o.mu.Unlock()
			return
		}
		task := o.queue[0]
		o.queue[0] = nil
		o.queue = o.queue[1:]
		o.mu.Unlock()

		o.safeRun(task)
	}
}

func (o *Ordered) safeRun(task func()) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("notification task panicked", zap.Any("panic", r))
		}
	}()
	task()
}
