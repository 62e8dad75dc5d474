package telemetry

import (
	"sync"
	"time"
)

// breakerState represents the state of the delivery circuit.
type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// Breaker is a circuit breaker guarding one telemetry sink. When the
// sink keeps failing, deliveries are dropped instead of retried so a
// dead interactions endpoint cannot back up the queue.
type Breaker struct {
	mu            sync.Mutex
	state         breakerState
	failures      int
	lastFailure   time.Time
	failThreshold int
	resetTimeout  time.Duration
}

// NewBreaker creates a breaker that opens after failThreshold
// consecutive failures and probes again after resetTimeout.
func NewBreaker(failThreshold int, resetTimeout time.Duration) *Breaker {
	return &Breaker{failThreshold: failThreshold, resetTimeout: resetTimeout}
}

// Allow reports whether a delivery attempt may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		if time.Since(b.lastFailure) > b.resetTimeout {
			b.state = breakerHalfOpen
			return true
		}
		return false
	case breakerHalfOpen:
		// One probe at a time; further attempts wait for its outcome.
		return false
	default:
		return true
	}
}

// RecordSuccess closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = breakerClosed
	b.failures = 0
}

// RecordFailure counts a failed delivery and opens the circuit at the
// threshold. A failed half-open probe reopens immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = time.Now()
	if b.state == breakerHalfOpen || b.failures >= b.failThreshold {
		b.state = breakerOpen
	}
}
