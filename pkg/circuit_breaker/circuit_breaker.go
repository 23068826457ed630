package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpenCB = errors.New("circuit breaker is open")

type Settings struct {
	// RecordLength is the size of the window of tracked calls.
	RecordLength int `envconfig:"CB_RECORD_LENGTH" default:"10"`
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `envconfig:"CB_TIMEOUT" default:"10s"`
	// Percentile of failed calls in the window that opens the breaker.
	Percentile float64 `envconfig:"CB_PERCENTILE" default:"0.5"`
	// RecoveryRequests successful half-open calls close the breaker again.
	RecoveryRequests int `envconfig:"CB_RECOVERY_REQUESTS" default:"3"`
}

type CircuitBreaker interface {
	Call(fn func() error) error
	State() Status
	Reset()
}

type circuitBreaker struct {
	mu  sync.Mutex
	cfg Settings
	now func() time.Time

	state    Status
	openedAt time.Time
	window   []bool // true marks a failed call
	pos      int
	success  int
}

type Option func(*circuitBreaker)

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(cb *circuitBreaker) {
		cb.now = now
	}
}

func New(cfg Settings, opts ...Option) CircuitBreaker {
	if cfg.RecordLength <= 0 {
		cfg.RecordLength = 10
	}
	cb := &circuitBreaker{
		cfg:    cfg,
		now:    time.Now,
		state:  Closed,
		window: make([]bool, cfg.RecordLength),
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

func (cb *circuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			cb.mu.Unlock()
			return ErrOpenCB
		}
		cb.state = HalfOpen
		cb.success = 0
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.window[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.window)

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
			return err
		}
		cb.success++
		if cb.success >= cb.cfg.RecoveryRequests {
			cb.reset()
		}
		return nil
	}

	fails := 0
	for _, failed := range cb.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(cb.window)) >= cb.cfg.Percentile {
		cb.trip()
	}
	return err
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.success = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.pos = 0
	cb.success = 0
	cb.state = Closed
}
