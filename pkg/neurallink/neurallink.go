package neurallink

import (
	"context"
	"fmt"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/session"

	// Register backend implementations.
	_ "github.com/crimson-sun/neurallink/internal/backend/http"
	_ "github.com/crimson-sun/neurallink/internal/backend/replay"
)

// Errors returned by Submit. Nothing else escapes: transport failures and
// refusals are reported through the session state.
var (
	ErrInactive     = session.ErrInactive
	ErrEmptyTurn    = session.ErrEmptyTurn
	ErrTurnInFlight = session.ErrTurnInFlight
)

// Backend answers one chat turn. Return an error for transport failures;
// a refusal is a normal Envelope with Status "REFUSED".
type Backend interface {
	Analyze(ctx context.Context, text string) (Envelope, error)
}

// Client is a single interactive session against a backend.
// Safe for concurrent use.
type Client struct {
	session *session.Session
	backend backend.Analyzer
}

// New creates an idle Client. Call Start before submitting turns.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var b backend.Analyzer
	if o.backend != nil {
		b = customBackend{o.backend}
	} else {
		var err error
		b, err = backend.New(o.provider, backend.Config{
			Endpoint:   o.endpoint,
			APIKey:     o.apiKey,
			Timeout:    o.timeout,
			MaxRetries: o.maxRetries,
			ScriptPath: o.scriptPath,
			Logger:     o.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("neurallink: %w", err)
		}
	}

	return &Client{
		session: session.New(b, session.WithLogger(o.logger)),
		backend: b,
	}, nil
}

// Start begins a fresh session, discarding any previous log and history.
func (c *Client) Start() {
	c.session.Start()
}

// End closes the session and, when the backend supports it, tells the
// backend to forget the conversation. Only the reset error is returned; the
// session is ended regardless.
func (c *Client) End(ctx context.Context) error {
	c.session.End()
	if r, ok := c.backend.(backend.Resetter); ok {
		if err := r.Reset(ctx); err != nil {
			return fmt.Errorf("neurallink: %w", err)
		}
	}
	return nil
}

// Active reports whether a session is running.
func (c *Client) Active() bool {
	return c.session.IsActive()
}

// Submit sends one user turn and applies the backend's answer. It blocks
// until the backend answers or ctx ends.
func (c *Client) Submit(ctx context.Context, text string) error {
	return c.session.SubmitTurn(ctx, text)
}

// Note appends a locally generated entry to the log. Severity is one of
// "info", "warning", "error" or "success"; anything else is stored as "info".
// Unrecognized agents are stored as "Unknown".
func (c *Client) Note(agent, message, severity string) Entry {
	return entryFromModel(c.session.AppendLog(model.ParseAgent(agent), message, model.ParseSeverity(severity)))
}

// Entries returns the session log in insertion order.
func (c *Client) Entries() []Entry {
	return entriesFromModel(c.session.Logs())
}

// History returns the chat history.
func (c *Client) History() []Turn {
	return turnsFromModel(c.session.History())
}

// Snapshot returns the confidence radar values.
func (c *Client) Snapshot() Snapshot {
	return snapshotFromModel(c.session.Snapshot())
}

// TakeRefusal returns and clears the pending refusal signal.
func (c *Client) TakeRefusal() (Refusal, bool) {
	r, ok := c.session.TakeRefusal()
	if !ok {
		return Refusal{}, false
	}
	return Refusal{Reason: r.Reason, Source: r.Source}, true
}

// InFlight reports whether a turn is awaiting the backend.
func (c *Client) InFlight() bool {
	return c.session.InFlight()
}

// State returns a consistent copy of everything above without consuming
// the refusal signal.
func (c *Client) State() State {
	st := c.session.State()
	return State{
		Active:         st.Status == session.Active,
		Generation:     st.Generation,
		Entries:        entriesFromModel(st.Logs),
		History:        turnsFromModel(st.History),
		Snapshot:       snapshotFromModel(st.Snapshot),
		InFlight:       st.InFlight,
		RefusalPending: st.RefusalPending,
	}
}

// Health probes the backend. Backends without a health check are assumed healthy.
func (c *Client) Health(ctx context.Context) error {
	if h, ok := c.backend.(backend.HealthChecker); ok {
		return h.Health(ctx)
	}
	return nil
}

// Close ends the session. It does not contact the backend.
func (c *Client) Close() error {
	c.session.End()
	return nil
}

// customBackend adapts a public Backend to the internal interface.
type customBackend struct {
	b Backend
}

func (c customBackend) Analyze(ctx context.Context, text string) (model.Envelope, error) {
	env, err := c.b.Analyze(ctx, text)
	if err != nil {
		return model.Envelope{}, err
	}
	return env.toModel(), nil
}
