// Package stdout prints committed entries to a terminal stream, either as
// NDJSON for piping or as the console line form shown in the Neural Link pane.
package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
)

// Option configures an Output.
type Option func(*Output)

// WithWriter redirects output away from os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Output) { o.w = w }
}

// Output writes one line per entry.
type Output struct {
	mu        sync.Mutex
	w         io.Writer
	verbosity compactor.Verbosity
	console   bool
}

// New creates an Output on os.Stdout. With console set, entries are printed
// as "[HH:MM:SS.mmm] Agent> message" instead of NDJSON.
func New(verbosity compactor.Verbosity, console bool, opts ...Option) *Output {
	o := &Output{w: os.Stdout, verbosity: verbosity, console: console}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Write(_ context.Context, entry model.LogEntry) error {
	entry = output.FormatEntry(entry, o.verbosity)

	var line []byte
	if o.console {
		line = []byte(ConsoleLine(entry) + "\n")
	} else {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("stdout output: marshal: %w", err)
		}
		line = append(data, '\n')
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := o.w.Write(line); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

// Close is a no-op; the stream is not owned by the Output.
func (o *Output) Close() error {
	return nil
}

// ConsoleLine renders an entry the way the Neural Link pane lists it.
// Error entries carry a "!" marker after the agent.
func ConsoleLine(e model.LogEntry) string {
	marker := ">"
	if e.Severity == model.SeverityError {
		marker = "!"
	}
	return fmt.Sprintf("[%s] %s%s %s", e.Timestamp, e.Agent, marker, e.Message)
}
