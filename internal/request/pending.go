package request

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// pendingRequest is the cancellation handle of a request in flight.
type pendingRequest struct {
	id     uuid.UUID
	cancel context.CancelCauseFunc
}

// pendingRegistry keeps at most one request in flight per key.
// Once closed it accepts no new work.
type pendingRegistry struct {
	mu       sync.Mutex
	requests map[string]*pendingRequest
	closed   bool
}

func newPendingRegistry() *pendingRegistry {
	return &pendingRegistry{
		requests: make(map[string]*pendingRequest),
	}
}

// pendingKey identifies requests that supersede each other.
func pendingKey(path, method string) string {
	return path + ":" + strings.ToLower(method)
}

// register cancels the request currently registered under key with ErrSuperseded
// and registers a new one derived from parent.
// The returned release func must be called once the request settles.
// It fails with ErrDispatcherClosed after close.
func (r *pendingRegistry) register(
	parent context.Context,
	key string,
) (context.Context, uuid.UUID, func(), error) {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()

		return nil, uuid.Nil, nil, ErrDispatcherClosed
	}

	ctx, cancel := context.WithCancelCause(parent)

	entry := &pendingRequest{
		id:     uuid.New(),
		cancel: cancel,
	}

	if previous, ok := r.requests[key]; ok {
		previous.cancel(ErrSuperseded)
	}

	r.requests[key] = entry

	r.mu.Unlock()

	release := func() {
		r.mu.Lock()

		// A newer request may already own the key.
		if current, ok := r.requests[key]; ok && current.id == entry.id {
			delete(r.requests, key)
		}

		r.mu.Unlock()

		cancel(nil)
	}

	return ctx, entry.id, release, nil
}

// close refuses new work from now on and cancels every request in flight with cause.
func (r *pendingRegistry) close(cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	for key, entry := range r.requests {
		entry.cancel(cause)
		delete(r.requests, key)
	}
}

// whileOpen runs fn under the registry lock unless the registry is closed.
// It reports whether fn ran.
func (r *pendingRegistry) whileOpen(fn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	fn()

	return true
}

// size returns the number of requests in flight.
func (r *pendingRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.requests)
}
