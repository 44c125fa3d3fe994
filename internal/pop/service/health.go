package service

import (
	"sync"

	"github.com/goodnatureofminers/popminer-backend/pkg/event"
)

// Health turns unhealthy after threshold consecutive failures and healthy
// again on the next success. Listeners hear about every flip.
type Health struct {
	name      string
	threshold int

	mu        sync.Mutex
	failures  int
	healthy   bool
	lastError error

	changed *event.Registry[bool]
}

// NewHealth creates a healthy flag. A threshold below 1 uses the default.
func NewHealth(name string, threshold int) *Health {
	if threshold < 1 {
		threshold = defaultFailureThreshold
	}
	return &Health{
		name:      name,
		threshold: threshold,
		healthy:   true,
		changed:   event.NewRegistry[bool](nil),
	}
}

func (h *Health) Name() string { return h.name }

// Healthy reports the current flag.
func (h *Health) Healthy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.healthy
}

// LastError returns the error of the most recent failure, nil after a success.
func (h *Health) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastError
}

// OnChange registers fn for flips of the flag.
func (h *Health) OnChange(owner any, fn func(healthy bool)) {
	h.changed.Register(owner, fn)
}

// Success resets the failure count.
func (h *Health) Success() {
	h.mu.Lock()
	h.failures = 0
	h.lastError = nil
	flipped := !h.healthy
	h.healthy = true
	h.mu.Unlock()

	if flipped {
		h.changed.Emit(true)
	}
}

// Failure counts one more consecutive failure.
func (h *Health) Failure(err error) {
	h.mu.Lock()
	h.failures++
	h.lastError = err
	flipped := h.healthy && h.failures >= h.threshold
	if flipped {
		h.healthy = false
	}
	h.mu.Unlock()

	if flipped {
		h.changed.Emit(false)
	}
}
