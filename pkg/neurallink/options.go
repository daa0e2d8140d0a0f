package neurallink

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	provider   string
	endpoint   string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	scriptPath string
	backend    Backend
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*options)

// WithEndpoint sets the HTTP backend base URL. Default: http://127.0.0.1:8000.
func WithEndpoint(url string) Option {
	return func(o *options) {
		o.provider = "http"
		o.endpoint = url
	}
}

// WithAPIKey sends a Bearer token with every HTTP backend request.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithTimeout bounds each HTTP backend request. Default: 60s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxRetries sets retries for health and reset calls. Turns are never retried.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// WithReplayScript answers turns from a YAML script instead of a live backend.
func WithReplayScript(path string) Option {
	return func(o *options) {
		o.provider = "replay"
		o.scriptPath = path
	}
}

// WithBackend supplies a custom backend. It takes precedence over
// WithEndpoint and WithReplayScript.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the diagnostic logger. Default: no-op. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		provider: "http",
		endpoint: "http://127.0.0.1:8000",
		timeout:  60 * time.Second,
		logger:   zap.NewNop(),
	}
}
