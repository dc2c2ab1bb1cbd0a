package internal

import (
	"sync"
	"time"
)

// BreakerState is the externally visible state of a CircuitBreaker.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// CircuitBreaker guards the remote summarizer. Failures inside the window open it; once the
// open period lapses a single trial call is let through, and its outcome closes or reopens it.
type CircuitBreaker struct {
	mu           sync.Mutex
	failures     []time.Time
	threshold    int
	window       time.Duration
	openDuration time.Duration
	openUntil    time.Time
	trialPending bool
	now          func() time.Time
}

func NewCircuitBreaker(threshold int, window, openDuration time.Duration) *CircuitBreaker {
	if threshold < 1 {
		threshold = 1
	}
	return &CircuitBreaker{
		threshold:    threshold,
		window:       window,
		openDuration: openDuration,
		failures:     make([]time.Time, 0, threshold),
		now:          time.Now,
	}
}

// Allow reports whether a call may go out now. In the half-open state only the first
// caller gets through until that trial call is recorded.
func (cb *CircuitBreaker) Allow() bool {
	if cb == nil {
		return true
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.stateLocked() {
	case BreakerOpen:
		return false
	case BreakerHalfOpen:
		if cb.trialPending {
			return false
		}
		cb.trialPending = true
	}
	return true
}

// RecordFailure notes a failed call. A failed trial call reopens the breaker straight away.
func (cb *CircuitBreaker) RecordFailure() {
	if cb == nil {
		return
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	if cb.stateLocked() == BreakerHalfOpen {
		cb.trialPending = false
		cb.openUntil = now.Add(cb.openDuration)
		return
	}

	cutoff := now.Add(-cb.window)
	kept := cb.failures[:0]
	for _, at := range cb.failures {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	cb.failures = append(kept, now)

	if len(cb.failures) >= cb.threshold {
		cb.failures = cb.failures[:0]
		cb.openUntil = now.Add(cb.openDuration)
	}
}

// RecordSuccess closes the breaker and forgets earlier failures.
func (cb *CircuitBreaker) RecordSuccess() {
	if cb == nil {
		return
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = cb.failures[:0]
	cb.openUntil = time.Time{}
	cb.trialPending = false
}

func (cb *CircuitBreaker) State() BreakerState {
	if cb == nil {
		return BreakerClosed
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == BreakerOpen
}

func (cb *CircuitBreaker) stateLocked() BreakerState {
	switch {
	case cb.openUntil.IsZero():
		return BreakerClosed
	case cb.now().Before(cb.openUntil):
		return BreakerOpen
	default:
		return BreakerHalfOpen
	}
}
