package breaker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"reimburse-api/internal/pkg/clock"
)

// ErrOpen is returned without invoking the wrapped operation when the
// breaker is open or the half-open call budget is exhausted.
var ErrOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type Settings struct {
	FailureThreshold int
	RecoveryTimeout  time.Duration
	HalfOpenMaxCalls int
	// Excluded reports whether an error should bypass failure counting
	// (e.g. upstream 4xx caused by the request itself).
	Excluded func(error) bool
}

type Counts struct {
	Failures      int
	Successes     int
	HalfOpenCalls int
}

// Breaker isolates an unreliable dependency. A single instance is shared
// process-wide per dependency; all state transitions happen under one mutex
// so concurrent callers observe a linearizable state machine.
type Breaker struct {
	name   string
	st     Settings
	clock  clock.Clock
	logger *slog.Logger

	mu              sync.Mutex
	state           State
	failureCount    int
	successCount    int
	halfOpenCalls   int
	lastFailureTime time.Time
}

func New(name string, st Settings, clk clock.Clock, logger *slog.Logger) *Breaker {
	if st.FailureThreshold <= 0 {
		st.FailureThreshold = 5
	}
	if st.RecoveryTimeout <= 0 {
		st.RecoveryTimeout = 30 * time.Second
	}
	if st.HalfOpenMaxCalls <= 0 {
		st.HalfOpenMaxCalls = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Breaker{
		name:   name,
		st:     st,
		clock:  clk,
		logger: logger,
		state:  StateClosed,
	}
}

// Do executes fn with breaker bookkeeping. It returns ErrOpen without
// invoking fn when the breaker rejects the call, otherwise fn's error.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := b.beforeCall(); err != nil {
		return err
	}

	err := fn(ctx)
	b.afterCall(err)
	return err
}

func (b *Breaker) beforeCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.clock.Now().Sub(b.lastFailureTime) < b.st.RecoveryTimeout {
			return ErrOpen
		}
		b.toHalfOpen()
	}

	if b.state == StateHalfOpen {
		if b.halfOpenCalls >= b.st.HalfOpenMaxCalls {
			return ErrOpen
		}
		b.halfOpenCalls++
	}

	return nil
}

func (b *Breaker) afterCall(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.onSuccess()
		return
	}
	if b.st.Excluded != nil && b.st.Excluded(err) {
		return
	}
	b.onFailure()
}

func (b *Breaker) onSuccess() {
	if b.state == StateHalfOpen {
		b.successCount++
		if b.successCount >= b.st.HalfOpenMaxCalls {
			b.toClosed()
			b.logger.Info("circuit breaker closed after successful recovery", "breaker", b.name)
		}
		return
	}
	b.failureCount = 0
}

func (b *Breaker) onFailure() {
	b.failureCount++
	b.lastFailureTime = b.clock.Now()

	switch b.state {
	case StateHalfOpen:
		b.toOpen()
		b.logger.Warn("circuit breaker reopened after failure in half-open state", "breaker", b.name)
	case StateClosed:
		if b.failureCount >= b.st.FailureThreshold {
			b.toOpen()
			b.logger.Warn("circuit breaker opened", "breaker", b.name, "failures", b.failureCount)
		}
	}
}

func (b *Breaker) toOpen() {
	b.state = StateOpen
	b.halfOpenCalls = 0
	b.successCount = 0
}

func (b *Breaker) toClosed() {
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
	b.halfOpenCalls = 0
}

func (b *Breaker) toHalfOpen() {
	b.state = StateHalfOpen
	b.successCount = 0
	b.halfOpenCalls = 0
	b.logger.Info("circuit breaker entering half-open state", "breaker", b.name)
}

// Reset forces the breaker closed. Operational escape hatch.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toClosed()
	b.lastFailureTime = time.Time{}
	b.logger.Info("circuit breaker manually reset", "breaker", b.name)
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Counts{
		Failures:      b.failureCount,
		Successes:     b.successCount,
		HalfOpenCalls: b.halfOpenCalls,
	}
}
