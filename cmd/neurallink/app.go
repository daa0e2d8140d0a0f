package main

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/config"
	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
	"github.com/crimson-sun/neurallink/internal/output/async"
	"github.com/crimson-sun/neurallink/internal/output/file"
	"github.com/crimson-sun/neurallink/internal/output/multi"
	"github.com/crimson-sun/neurallink/internal/output/stdout"
	"github.com/crimson-sun/neurallink/internal/output/webhook"
	"github.com/crimson-sun/neurallink/internal/session"
)

// app is the wired set of components one command runs against.
type app struct {
	backend backend.Analyzer
	session *session.Session
	out     output.Output // nil when no entry tap is configured
}

// newApp builds the backend, the entry taps and the session from cfg.
// When interactive is true, stdout taps are skipped since the TUI owns stdout.
func newApp(cfg config.Config, logger *zap.Logger, interactive bool) (*app, error) {
	b, err := backend.New(cfg.Backend.Provider, backend.Config{
		Endpoint:   cfg.Backend.Endpoint,
		APIKey:     cfg.Backend.APIKey,
		Timeout:    cfg.Backend.Timeout,
		MaxRetries: cfg.Backend.MaxRetries,
		ScriptPath: cfg.Backend.ScriptPath,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	out, err := buildOutput(cfg.Output, cfg.Backend.APIKey, logger, interactive)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{session.WithLogger(logger.Named("session"))}
	if out != nil {
		opts = append(opts, session.WithOutput(out))
	}
	return &app{backend: b, session: session.New(b, opts...), out: out}, nil
}

// Close flushes and closes the entry taps.
func (a *app) Close() error {
	if a.out == nil {
		return nil
	}
	return a.out.Close()
}

// buildOutput turns the configured formats into one async tap, fanning out
// through multi when more than one destination is set. The webhook reuses the
// backend API key as its Bearer token.
func buildOutput(oc config.OutputConfig, token string, logger *zap.Logger, interactive bool) (output.Output, error) {
	verbosity := compactor.ParseVerbosity(oc.Verbosity)

	var outs []output.Output
	closeAll := func() {
		for _, o := range outs {
			o.Close()
		}
	}
	for _, f := range oc.Formats() {
		switch f {
		case "stdout":
			if interactive {
				logger.Warn("stdout output disabled in interactive mode")
				continue
			}
			outs = append(outs, stdout.New(verbosity, oc.Pretty))
		case "file":
			var opts []file.Option
			if oc.MaxSize > 0 {
				opts = append(opts, file.WithMaxSize(oc.MaxSize))
			}
			fo, err := file.New(oc.Path, verbosity, opts...)
			if err != nil {
				closeAll()
				return nil, err
			}
			outs = append(outs, fo)
		case "webhook":
			wh := webhook.New(oc.WebhookURL, verbosity,
				webhook.WithToken(token),
				webhook.WithLogger(logger.Named("webhook")))
			outs = append(outs, multi.Filter(wh, multi.Agents(webhookAgents(oc.WebhookAgents)...)))
		default:
			closeAll()
			return nil, fmt.Errorf("unknown output %q", f)
		}
	}

	var inner output.Output
	switch len(outs) {
	case 0:
		return nil, nil
	case 1:
		inner = outs[0]
	default:
		inner = multi.New(outs...)
	}
	opts := []async.Option{async.WithLogger(logger.Named("output"))}
	if interactive {
		// The TUI must stay responsive; a stalled sink loses entries instead.
		opts = append(opts, async.WithDropOnFull())
	}
	return async.New(inner, opts...), nil
}

// webhookAgents parses a comma-separated agent list. Unrecognized names map
// to Unknown, like any other agent tag.
func webhookAgents(list string) []model.Agent {
	var agents []model.Agent
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			agents = append(agents, model.ParseAgent(name))
		}
	}
	return agents
}

// outputsToStdout reports whether NDJSON entries go to stdout, in which case
// diagnostics are logged as JSON to stderr.
func outputsToStdout(cfg config.Config) bool {
	for _, f := range cfg.Output.Formats() {
		if f == "stdout" {
			return true
		}
	}
	return false
}

var errUnhealthy = errors.New("backend unhealthy")
