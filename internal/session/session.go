// Package session owns the interactive session: its lifecycle, append-only
// log, chat history and confidence snapshot. Backend envelopes are applied
// atomically and only while the generation they were requested under is
// still current.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/engine"
	"github.com/crimson-sun/neurallink/internal/engine/classifier"
	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/logstore"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
)

// Messages the session synthesizes itself.
const (
	InitializedMessage     = "Session Initialized. Neural Link Active."
	UnreachableMessage     = "Backend unreachable"
	ConnectionErrorReply   = "Connection Error. Ensure Backend is running."
	refusedLogPrefix       = "REFUSED: "
	refusalReplyPrefix     = "SYSTEM REFUSAL: "
	processingNoticePrefix = "Processing input: "
)

const defaultTapTimeout = 2 * time.Second

var (
	// ErrInactive is returned by SubmitTurn when no session is active.
	ErrInactive = errors.New("session is not active")
	// ErrEmptyTurn is returned by SubmitTurn for blank input.
	ErrEmptyTurn = errors.New("empty turn")
	// ErrTurnInFlight is returned by SubmitTurn while another turn is awaiting the backend.
	ErrTurnInFlight = errors.New("a turn is already in flight")
)

// Status is the lifecycle state.
type Status int

const (
	Idle Status = iota
	Active
)

func (s Status) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// State is a consistent copy of everything the presentation layer reads.
type State struct {
	Status         Status
	Generation     uint64
	Logs           []model.LogEntry
	History        []model.ChatTurn
	Snapshot       model.ConfidenceVector
	InFlight       bool
	RefusalPending bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger. Default: no-op. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOutput tees every committed log entry to out, in commit order. Writes
// happen outside the session lock and are bounded by the tap timeout; errors
// are logged and otherwise ignored.
func WithOutput(out output.Output) Option {
	return func(s *Session) { s.out = out }
}

// WithTapTimeout bounds each write to the output set by WithOutput.
// Default: 2s.
func WithTapTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.tapTimeout = d
		}
	}
}

// WithEngine replaces the default interpretation engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithStoreOptions configures the underlying log store (clock, id source).
func WithStoreOptions(opts ...logstore.Option) Option {
	return func(s *Session) { s.storeOpts = append(s.storeOpts, opts...) }
}

// Session is safe for concurrent use. Reads return copies.
type Session struct {
	mu         sync.Mutex
	status     Status
	generation uint64
	log        *logstore.Store
	history    []model.ChatTurn
	snapshot   model.ConfidenceVector
	refusal    *model.Refusal

	// Committed entries not yet written to out. tapMu serializes delivery so
	// the tap sees commit order; it is always taken before mu.
	unsent []model.LogEntry
	tapMu  sync.Mutex

	backend    backend.Analyzer
	engine     *engine.Engine
	out        output.Output
	tapTimeout time.Duration
	logger     *zap.Logger
	storeOpts  []logstore.Option

	turn     *semaphore.Weighted
	inFlight atomic.Bool
}

// New creates an Idle session that submits turns to b.
func New(b backend.Analyzer, opts ...Option) *Session {
	s := &Session{
		backend:    b,
		logger:     zap.NewNop(),
		tapTimeout: defaultTapTimeout,
		turn:       semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = engine.New(classifier.New())
	}
	s.log = logstore.New(s.storeOpts...)
	return s
}

// Start moves to Active from any state with a full reset, then logs the
// initialization entry. Calling it while Active is not a no-op.
func (s *Session) Start() {
	defer s.flushTap()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(Active)
	s.appendLocked(model.AgentSystem, InitializedMessage, model.SeveritySuccess, nil)
	s.logger.Info("session started", zap.Uint64("generation", s.generation))
}

// End moves to Idle from any state with a full reset. Responses still in
// flight are discarded when they arrive.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(Idle)
	s.logger.Info("session ended", zap.Uint64("generation", s.generation))
}

func (s *Session) resetLocked(to Status) {
	s.status = to
	s.generation++
	s.log.Clear()
	s.history = nil
	s.snapshot = model.ConfidenceVector{}
	s.refusal = nil
}

// IsActive reports whether the session is Active.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == Active
}

// Generation returns the current session epoch.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// AppendLog adds a locally synthesized entry with no payload. Agents outside
// the known set are stored as Unknown and unknown severities as info.
func (s *Session) AppendLog(agent model.Agent, message string, severity model.Severity) model.LogEntry {
	defer s.flushTap()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(model.ParseAgent(string(agent)), message, model.ParseSeverity(string(severity)), nil)
}

// RecordTurn appends one message to the chat history.
func (s *Session) RecordTurn(role model.Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, model.ChatTurn{Role: role, Text: text})
}

// UpdateSnapshot replaces the confidence snapshot, clamping every axis.
func (s *Session) UpdateSnapshot(v model.ConfidenceVector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = v.Clamped()
}

// SubmitTurn records the user's message, awaits the backend and applies its
// envelope. It returns an error only when the call was rejected without
// touching any state; transport failures and refusals become session state.
func (s *Session) SubmitTurn(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyTurn
	}
	if !s.turn.TryAcquire(1) {
		return ErrTurnInFlight
	}
	defer s.turn.Release(1)

	s.mu.Lock()
	if s.status != Active {
		s.mu.Unlock()
		return ErrInactive
	}
	gen := s.generation
	s.inFlight.Store(true)
	s.history = append(s.history, model.ChatTurn{Role: model.RoleUser, Text: text})
	s.appendLocked(model.AgentSystem, processingNotice(text), model.SeverityInfo, nil)
	s.mu.Unlock()
	s.flushTap()
	defer s.inFlight.Store(false)

	env, err := s.backend.Analyze(ctx, text)

	defer s.flushTap()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.logger.Debug("discarding stale response",
			zap.Uint64("requested", gen), zap.Uint64("current", s.generation))
		return nil
	}
	if err != nil {
		s.logger.Warn("backend request failed", zap.Error(err))
		s.history = append(s.history, model.ChatTurn{Role: model.RoleAssistant, Text: ConnectionErrorReply})
		s.appendLocked(model.AgentSystem, UnreachableMessage, model.SeverityError, nil)
		return nil
	}
	s.applyLocked(s.engine.Interpret(env))
	return nil
}

// applyLocked commits one interpreted envelope in a single critical section.
func (s *Session) applyLocked(res engine.Result) {
	for _, l := range res.Lines {
		s.appendLocked(l.Agent, l.Message, l.Severity, l.Payload)
	}
	s.snapshot = res.Snapshot.Clamped()

	if res.Refusal != nil {
		r := *res.Refusal
		s.history = append(s.history, model.ChatTurn{Role: model.RoleAssistant, Text: refusalReplyPrefix + r.Reason})
		s.appendLocked(model.AgentCoordinator, refusedLogPrefix+r.Reason, model.SeverityError, nil)
		s.refusal = &r
		s.logger.Info("turn refused", zap.String("reason", r.Reason), zap.String("source", r.Source))
		return
	}
	s.history = append(s.history, model.ChatTurn{Role: model.RoleAssistant, Text: res.Reply})
	s.logger.Debug("turn applied", zap.Int("lines", len(res.Lines)), zap.Any("snapshot", s.snapshot))
}

func (s *Session) appendLocked(agent model.Agent, message string, severity model.Severity, payload model.Payload) model.LogEntry {
	e := s.log.Append(agent, message, severity, payload)
	if s.out != nil {
		s.unsent = append(s.unsent, e)
	}
	return e
}

// flushTap delivers committed entries to the output. It must be called
// without holding mu, so a slow or stuck output never blocks readers.
func (s *Session) flushTap() {
	if s.out == nil {
		return
	}
	s.tapMu.Lock()
	defer s.tapMu.Unlock()

	s.mu.Lock()
	batch := s.unsent
	s.unsent = nil
	s.mu.Unlock()

	for _, e := range batch {
		ctx, cancel := context.WithTimeout(context.Background(), s.tapTimeout)
		err := s.out.Write(ctx, e)
		cancel()
		if err != nil {
			s.logger.Warn("entry tap write failed", zap.String("id", e.ID), zap.Error(err))
		}
	}
}

func processingNotice(text string) string {
	return processingNoticePrefix + `"` + compactor.Preview(text) + `"`
}

// Logs returns the log in insertion order.
func (s *Session) Logs() []model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries()
}

// History returns the chat history in order.
func (s *Session) History() []model.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHistory(s.history)
}

// Snapshot returns the current confidence snapshot.
func (s *Session) Snapshot() model.ConfidenceVector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// TakeRefusal returns the pending refusal and clears it, so each refusal is
// observed once.
func (s *Session) TakeRefusal() (model.Refusal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refusal == nil {
		return model.Refusal{}, false
	}
	r := *s.refusal
	s.refusal = nil
	return r, true
}

// InFlight reports whether a turn is awaiting the backend.
func (s *Session) InFlight() bool {
	return s.inFlight.Load()
}

// State returns a consistent copy of the observable state. It does not
// consume the pending refusal.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Status:         s.status,
		Generation:     s.generation,
		Logs:           s.log.Entries(),
		History:        cloneHistory(s.history),
		Snapshot:       s.snapshot,
		InFlight:       s.inFlight.Load(),
		RefusalPending: s.refusal != nil,
	}
}

func cloneHistory(h []model.ChatTurn) []model.ChatTurn {
	out := make([]model.ChatTurn, len(h))
	copy(out, h)
	return out
}
