// Package replay plays canned backend envelopes from a YAML script, for demos
// and for driving the client without a live backend.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/model"
)

// ErrExhausted is returned once every step of a non-looping script was played.
var ErrExhausted = errors.New("replay script exhausted")

func init() {
	backend.Register("replay", func(cfg backend.Config) (backend.Analyzer, error) {
		if cfg.ScriptPath == "" {
			return nil, errors.New("script path is required")
		}
		s, err := Load(cfg.ScriptPath)
		if err != nil {
			return nil, err
		}
		return New(s, cfg.LoggerOrNop()), nil
	})
}

// Script is a sequence of envelopes answered in order.
type Script struct {
	Loop  bool   `yaml:"loop"`
	Steps []Step `yaml:"steps"`
}

// Step is one scripted answer. A non-empty Error simulates a transport failure.
type Step struct {
	Delay          time.Duration `yaml:"delay,omitempty"`
	Error          string        `yaml:"error,omitempty"`
	model.Envelope `yaml:",inline"`
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("script has no steps")
	}
	return &s, nil
}

// Backend implements backend.Analyzer, backend.Resetter and
// backend.HealthChecker over a Script.
type Backend struct {
	mu     sync.Mutex
	script *Script
	next   int
	logger *zap.Logger
}

// New creates a replay backend positioned at the first step.
func New(s *Script, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{script: s, logger: logger.Named("backend.replay")}
}

// Analyze answers with the next step, after its delay.
func (b *Backend) Analyze(ctx context.Context, text string) (model.Envelope, error) {
	step, idx, err := b.advance()
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: %w", backend.ErrUnavailable, err)
	}
	b.logger.Debug("replaying step", zap.Int("step", idx), zap.Int("input_len", len(text)))

	if step.Delay > 0 {
		t := time.NewTimer(step.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return model.Envelope{}, fmt.Errorf("%w: %w", backend.ErrUnavailable, ctx.Err())
		case <-t.C:
		}
	}
	if step.Error != "" {
		return model.Envelope{}, fmt.Errorf("%w: %s", backend.ErrUnavailable, step.Error)
	}
	return step.Envelope, nil
}

func (b *Backend) advance() (Step, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.next >= len(b.script.Steps) {
		if !b.script.Loop {
			return Step{}, 0, ErrExhausted
		}
		b.next = 0
	}
	idx := b.next
	b.next++
	return b.script.Steps[idx], idx, nil
}

// Reset rewinds the script to its first step.
func (b *Backend) Reset(context.Context) error {
	b.mu.Lock()
	b.next = 0
	b.mu.Unlock()
	return nil
}

// Health reports whether another step can be played.
func (b *Backend) Health(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.script.Loop && b.next >= len(b.script.Steps) {
		return fmt.Errorf("%w: %w", backend.ErrUnavailable, ErrExhausted)
	}
	return nil
}

// Remaining returns how many steps are left before exhaustion, or -1 when looping.
func (b *Backend) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.script.Loop {
		return -1
	}
	return len(b.script.Steps) - b.next
}
