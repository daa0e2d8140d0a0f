// Package async moves entry delivery off the session's critical path.
package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("async output closed")

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the queue capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) {
		if n > 0 {
			a.bufSize = n
		}
	}
}

// WithDropOnFull makes Write drop the entry instead of waiting when the queue
// is full. Drops are counted, see Dropped.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// WithDrainTimeout bounds how long Close waits for queued entries. Default: 5s.
func WithDrainTimeout(d time.Duration) Option {
	return func(a *Async) { a.drainTimeout = d }
}

// WithOnError sets the callback for inner Write failures. Default: a warning log.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithLogger sets the logger for drop, drain and write warnings.
func WithLogger(l *zap.Logger) Option {
	return func(a *Async) { a.logger = l }
}

// Async queues entries and delivers them to the inner output from a single
// goroutine, so the caller never waits on disk or network I/O. Delivery order
// matches Write order.
type Async struct {
	inner        output.Output
	bufSize      int
	dropOnFull   bool
	drainTimeout time.Duration
	errFunc      func(error)
	logger       *zap.Logger

	mu      sync.RWMutex // write lock taken only to close the queue
	closed  bool
	queue   chan model.LogEntry
	done    chan struct{}
	dropped atomic.Uint64
	err     error // result of the first Close
}

// New starts the delivery goroutine for inner.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:        inner,
		bufSize:      defaultBufferSize,
		drainTimeout: defaultDrainTimeout,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errFunc == nil {
		a.errFunc = func(err error) { a.logger.Warn("entry delivery failed", zap.Error(err)) }
	}
	a.queue = make(chan model.LogEntry, a.bufSize)
	a.done = make(chan struct{})
	go a.run()
	return a
}

// Write queues entry. When the queue is full it waits for room or for ctx,
// unless WithDropOnFull is set.
func (a *Async) Write(ctx context.Context, entry model.LogEntry) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	if a.dropOnFull {
		select {
		case a.queue <- entry:
		default:
			a.dropped.Add(1)
			a.logger.Warn("entry queue full, dropping entry",
				zap.String("agent", string(entry.Agent)), zap.String("id", entry.ID))
		}
		return nil
	}

	select {
	case a.queue <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns how many entries were discarded on a full queue.
func (a *Async) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting entries, waits up to the drain timeout for the queue
// to empty, then closes the inner output. Later calls return the first result.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		err := a.err
		a.mu.Unlock()
		return err
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	t := time.NewTimer(a.drainTimeout)
	defer t.Stop()
	select {
	case <-a.done:
	case <-t.C:
		a.logger.Warn("entry queue drain timed out", zap.Int("pending", len(a.queue)))
	}

	err := a.inner.Close()
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
	return err
}

func (a *Async) run() {
	defer close(a.done)
	for entry := range a.queue {
		if err := a.inner.Write(context.Background(), entry); err != nil {
			a.errFunc(err)
		}
	}
}
