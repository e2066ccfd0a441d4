package pipeline

import (
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// RunLock tracks which orders currently have an active pipeline run.
// Acquisition is non-blocking: a second run attempt for the same order is
// rejected immediately instead of queued. Locks for different orders are
// independent.
type RunLock struct {
	mu   sync.Mutex
	held map[kernel.UUID]struct{}
}

// NewRunLock creates an empty RunLock.
func NewRunLock() *RunLock {
	return &RunLock{
		held: make(map[kernel.UUID]struct{}),
	}
}

// TryAcquire attempts to take the lock for the given order. Returns true when
// the lock was acquired, false when another run already holds it.
func (l *RunLock) TryAcquire(orderID kernel.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[orderID]; ok {
		return false
	}

	l.held[orderID] = struct{}{}
	return true
}

// Release frees the lock for the given order. Releasing a lock that is not
// held is a no-op.
func (l *RunLock) Release(orderID kernel.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, orderID)
}

// IsHeld reports whether a run currently holds the lock for the given order.
func (l *RunLock) IsHeld(orderID kernel.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.held[orderID]
	return ok
}
