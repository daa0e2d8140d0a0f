// Package webhook forwards committed log entries to an HTTP endpoint in
// batches, for dashboards that watch a session from outside the terminal.
package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/backend/httpclient"
	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 5 * time.Second
	defaultTimeout       = 10 * time.Second
	defaultMaxRetries    = 3
)

// Option configures a webhook Output.
type Option func(*Output)

// WithToken sends the token as a Bearer Authorization header.
func WithToken(token string) Option {
	return func(o *Output) { o.token = token }
}

// WithBatchSize sets the number of entries accumulated before a flush. Default: 50.
func WithBatchSize(n int) Option {
	return func(o *Output) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithFlushInterval sets the maximum time between flushes. Default: 5s.
func WithFlushInterval(d time.Duration) Option {
	return func(o *Output) { o.flushInterval = d }
}

// WithClientOptions passes options to the underlying HTTP client, e.g. a
// shorter timeout or backoff in tests.
func WithClientOptions(opts ...httpclient.Option) Option {
	return func(o *Output) { o.clientOpts = append(o.clientOpts, opts...) }
}

// WithLogger sets the logger used for timer-triggered flush failures.
func WithLogger(l *zap.Logger) Option {
	return func(o *Output) { o.logger = l }
}

// Output POSTs batched entries to a URL as a JSON array. A batch is sent when
// batchSize entries are pending or flushInterval has passed since the first
// one. 429 and 5xx responses are retried with backoff.
type Output struct {
	url           string
	token         string
	verbosity     compactor.Verbosity
	batchSize     int
	flushInterval time.Duration
	clientOpts    []httpclient.Option
	client        *httpclient.Client
	logger        *zap.Logger

	mu      sync.Mutex
	pending []model.LogEntry
	timer   *time.Timer
}

// New creates a webhook output targeting url.
func New(url string, verbosity compactor.Verbosity, opts ...Option) *Output {
	o := &Output{
		url:           url,
		verbosity:     verbosity,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	clientOpts := append([]httpclient.Option{
		httpclient.WithTimeout(defaultTimeout),
		httpclient.WithMaxRetries(defaultMaxRetries),
	}, o.clientOpts...)
	o.client = httpclient.New(url, o.token, clientOpts...)
	return o
}

// Write queues an entry, flushing at once when the batch is full.
func (o *Output) Write(ctx context.Context, entry model.LogEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = append(o.pending, output.FormatEntry(entry, o.verbosity))
	if len(o.pending) >= o.batchSize {
		return o.flushLocked(ctx)
	}

	if len(o.pending) == 1 {
		o.timer = time.AfterFunc(o.flushInterval, func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if err := o.flushLocked(context.Background()); err != nil {
				o.logger.Warn("webhook flush failed", zap.String("url", o.url), zap.Error(err))
			}
		})
	}
	return nil
}

// Close sends whatever is still pending.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.flushLocked(context.Background())
}

// flushLocked sends the pending batch. Caller must hold o.mu.
func (o *Output) flushLocked(ctx context.Context) error {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	if len(o.pending) == 0 {
		return nil
	}
	batch := o.pending
	o.pending = nil

	if err := o.client.PostJSON(ctx, "", batch, nil); err != nil {
		return fmt.Errorf("webhook: %d entries: %w", len(batch), err)
	}
	return nil
}
