package output

import (
	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/model"
)

// FormatEntry returns a copy of the entry shaped for the given verbosity.
// At Minimal the payload is dropped (omitted from JSON via omitempty).
// Messages are compacted at Minimal and Standard.
func FormatEntry(e model.LogEntry, verbosity compactor.Verbosity) model.LogEntry {
	e.Message = compactor.New(verbosity).Compact(e.Message)
	if verbosity == compactor.Minimal {
		e.Payload = nil
	}
	return e
}
