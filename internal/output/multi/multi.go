// Package multi fans entries out to several outputs and narrows what each
// one receives.
package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
)

// Multi delivers every entry to each wrapped output in order. A failing output
// does not stop delivery to the ones after it.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

func (m *Multi) Write(ctx context.Context, entry model.LogEntry) error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Write(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every output, even after a failure.
func (m *Multi) Close() error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Keep reports whether an entry should reach an output.
type Keep func(model.LogEntry) bool

// Agents keeps entries from the listed agents. With no agents it keeps all.
func Agents(agents ...model.Agent) Keep {
	if len(agents) == 0 {
		return func(model.LogEntry) bool { return true }
	}
	set := make(map[model.Agent]struct{}, len(agents))
	for _, a := range agents {
		set[a] = struct{}{}
	}
	return func(e model.LogEntry) bool {
		_, ok := set[e.Agent]
		return ok
	}
}

// Filtered passes only kept entries to the wrapped output.
type Filtered struct {
	out  output.Output
	keep Keep
}

// Filter wraps out so it only sees entries keep accepts.
func Filter(out output.Output, keep Keep) *Filtered {
	return &Filtered{out: out, keep: keep}
}

func (f *Filtered) Write(ctx context.Context, entry model.LogEntry) error {
	if !f.keep(entry) {
		return nil
	}
	return f.out.Write(ctx, entry)
}

func (f *Filtered) Close() error {
	return f.out.Close()
}
