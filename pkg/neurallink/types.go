package neurallink

import "github.com/crimson-sun/neurallink/internal/model"

// Entry is one line of the session log.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`         // HH:MM:SS.mmm, UTC
	Agent     string `json:"agent"`             // System, Legal, Risk, Ethics, Confidence, Coordinator, Unknown
	Message   string `json:"message"`           // as sent by the backend
	Severity  string `json:"severity"`          // info, warning, error, success
	Payload   any    `json:"payload,omitempty"` // parsed view, nil for local notices
}

// Snapshot is the confidence radar. Every axis is within [0,100].
type Snapshot struct {
	Legal      float64 `json:"legal"`
	Risk       float64 `json:"risk"`
	Ethics     float64 `json:"ethics"`
	Confidence float64 `json:"confidence"`
}

// Turn is one chat message. Role is "user" or "assistant".
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Refusal is the one-shot signal raised when a turn was blocked.
// Source is "status" or "veto".
type Refusal struct {
	Reason string `json:"reason"`
	Source string `json:"source"`
}

// State is a consistent copy of the client's observable state.
type State struct {
	Active         bool     `json:"active"`
	Generation     uint64   `json:"generation"`
	Entries        []Entry  `json:"entries"`
	History        []Turn   `json:"history"`
	Snapshot       Snapshot `json:"snapshot"`
	InFlight       bool     `json:"in_flight"`
	RefusalPending bool     `json:"refusal_pending"`
}

// Envelope is the backend's answer to one turn, for custom backends.
// Response is a string or a JSON-like object. Any Status other than
// "REFUSED" is a normal answer.
type Envelope struct {
	Status   string    `json:"status"`
	Response any       `json:"response,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Logs     []LogLine `json:"logs,omitempty"`
}

// LogLine is one raw agent log line inside an Envelope.
type LogLine struct {
	Agent string `json:"agent"`
	Msg   string `json:"msg"`
}

func entryFromModel(e model.LogEntry) Entry {
	out := Entry{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Agent:     string(e.Agent),
		Message:   e.Message,
		Severity:  string(e.Severity),
	}
	if e.Payload != nil {
		out.Payload = e.Payload
	}
	return out
}

func entriesFromModel(es []model.LogEntry) []Entry {
	out := make([]Entry, len(es))
	for i, e := range es {
		out[i] = entryFromModel(e)
	}
	return out
}

func turnsFromModel(ts []model.ChatTurn) []Turn {
	out := make([]Turn, len(ts))
	for i, t := range ts {
		out[i] = Turn{Role: string(t.Role), Text: t.Text}
	}
	return out
}

func snapshotFromModel(v model.ConfidenceVector) Snapshot {
	return Snapshot{Legal: v.Legal, Risk: v.Risk, Ethics: v.Ethics, Confidence: v.Confidence}
}

func (e Envelope) toModel() model.Envelope {
	out := model.Envelope{Status: e.Status, Response: e.Response, Reason: e.Reason}
	if len(e.Logs) > 0 {
		out.Logs = make([]model.RawLine, len(e.Logs))
		for i, l := range e.Logs {
			out.Logs[i] = model.RawLine{Agent: l.Agent, Msg: l.Msg}
		}
	}
	return out
}
