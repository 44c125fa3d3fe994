// Package event provides owner-keyed callback registries with pluggable dispatch.
package event

import (
	"sync"
)

// Executor runs notification tasks.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(task func())

// Execute calls f(task).
func (f ExecutorFunc) Execute(task func()) {
	f(task)
}

// Inline runs every task on the caller's goroutine.
var Inline Executor = ExecutorFunc(func(task func()) { task() })

type handler[T any] struct {
	owner any
	fn    func(T)
}

// Registry holds callbacks keyed by owner. Owners must be comparable,
// usually a pointer to the subscribing component.
type Registry[T any] struct {
	mu       sync.RWMutex
	handlers []handler[T]
	exec     Executor
}

// NewRegistry returns a Registry dispatching through exec. A nil exec means Inline.
func NewRegistry[T any](exec Executor) *Registry[T] {
	if exec == nil {
		exec = Inline
	}
	return &Registry[T]{exec: exec}
}

// Register adds fn under owner. An owner may hold several callbacks.
func (r *Registry[T]) Register(owner any, fn func(T)) {
	r.mu.Lock()
	r.handlers = append(r.handlers, handler[T]{owner: owner, fn: fn})
	r.mu.Unlock()
}

// Remove drops every callback registered by owner.
func (r *Registry[T]) Remove(owner any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.handlers[:0]
	for _, h := range r.handlers {
		if h.owner != owner {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(r.handlers); i++ {
		r.handlers[i] = handler[T]{}
	}
	r.handlers = kept
}

// Len reports the number of registered callbacks.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Emit hands v to every callback registered at the time of the call.
// Callbacks run through the executor without the registry lock held,
// so they may register or remove owners themselves.
func (r *Registry[T]) Emit(v T) {
	r.mu.RLock()
	if len(r.handlers) == 0 {
		r.mu.RUnlock()
		return
	}
	snapshot := make([]handler[T], len(r.handlers))
	copy(snapshot, r.handlers)
	r.mu.RUnlock()

	r.exec.Execute(func() {
		for _, h := range snapshot {
			h.fn(v)
		}
	})
}
