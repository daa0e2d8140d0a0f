// Package backend defines the collaborator a session submits turns to.
package backend

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/model"
)

// ErrUnavailable marks a transport failure: the backend could not be reached
// or did not answer with a decodable envelope.
var ErrUnavailable = errors.New("backend unavailable")

// Analyzer sends one user turn to the backend and returns its envelope.
// Any error is a transport failure; a refusal is a normal envelope.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (model.Envelope, error)
}

// Resetter is implemented by backends that keep per-conversation state and
// want to be told when a session ends.
type Resetter interface {
	Reset(ctx context.Context) error
}

// HealthChecker is implemented by backends that can be probed.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config holds provider-specific connection settings.
type Config struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	ScriptPath string
	Logger     *zap.Logger
}

// LoggerOrNop returns the configured logger, or a no-op logger when unset.
func (c Config) LoggerOrNop() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
