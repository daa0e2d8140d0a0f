// Package http talks to the analysis backend over its JSON HTTP API.
package http

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/backend/httpclient"
	"github.com/crimson-sun/neurallink/internal/model"
)

const (
	analyzePath = "/analyze"
	resetPath   = "/reset"
	healthPath  = "/health"
)

func init() {
	backend.Register("http", func(cfg backend.Config) (backend.Analyzer, error) {
		return New(cfg)
	})
}

// Backend implements backend.Analyzer, backend.Resetter and
// backend.HealthChecker against the HTTP API.
type Backend struct {
	client *httpclient.Client
	logger *zap.Logger
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// New creates an HTTP backend for cfg.Endpoint.
func New(cfg backend.Config) (*Backend, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	opts := []httpclient.Option{httpclient.WithMaxRetries(cfg.MaxRetries)}
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(cfg.Timeout))
	}
	return &Backend{
		client: httpclient.New(cfg.Endpoint, cfg.APIKey, opts...),
		logger: cfg.LoggerOrNop().Named("backend.http"),
	}, nil
}

// Analyze posts the turn to /analyze. It is never retried: the backend may
// already have acted on a request whose response was lost.
func (b *Backend) Analyze(ctx context.Context, text string) (model.Envelope, error) {
	var env model.Envelope
	if err := b.client.PostJSON(ctx, analyzePath, analyzeRequest{Text: text}, &env, httpclient.NoRetry()); err != nil {
		b.logger.Debug("analyze failed", zap.Error(err))
		return model.Envelope{}, fmt.Errorf("%w: analyze: %w", backend.ErrUnavailable, err)
	}
	b.logger.Debug("analyze ok", zap.String("status", env.Status), zap.Int("logs", len(env.Logs)))
	return env, nil
}

// Reset tells the backend the conversation ended.
func (b *Backend) Reset(ctx context.Context) error {
	if err := b.client.PostJSON(ctx, resetPath, struct{}{}, nil); err != nil {
		return fmt.Errorf("%w: reset: %w", backend.ErrUnavailable, err)
	}
	return nil
}

// Health probes /health; any 2xx answer counts as healthy.
func (b *Backend) Health(ctx context.Context) error {
	if err := b.client.GetJSON(ctx, healthPath, nil, nil); err != nil {
		return fmt.Errorf("%w: health: %w", backend.ErrUnavailable, err)
	}
	return nil
}
