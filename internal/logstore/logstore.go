// Package logstore keeps the session's append-only, insertion-ordered log.
package logstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/neurallink/internal/model"
)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for entry timestamps. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the entry id generator. Default: random UUIDs.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// Store is an append-only sequence of log entries. It is not synchronized;
// the owning session serializes access.
type Store struct {
	entries []model.LogEntry
	now     func() time.Time
	newID   func() string
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds an entry with a fresh id and insertion-time timestamp.
func (s *Store) Append(agent model.Agent, message string, severity model.Severity, payload model.Payload) model.LogEntry {
	e := model.LogEntry{
		ID:        s.newID(),
		Timestamp: s.now().UTC().Format(model.TimestampLayout),
		Agent:     agent,
		Message:   message,
		Severity:  severity,
		Payload:   payload,
	}
	s.entries = append(s.entries, e)
	return e
}

// Entries returns a copy of the log in insertion order.
func (s *Store) Entries() []model.LogEntry {
	out := make([]model.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Clear drops every entry. Only lifecycle transitions call this.
func (s *Store) Clear() {
	s.entries = nil
}
