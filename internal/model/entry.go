package model

import "strings"

// Severity is the display class of a log entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// ParseSeverity maps a severity name onto the closed set, ignoring case and
// surrounding whitespace. Anything else is SeverityInfo.
func ParseSeverity(s string) Severity {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityInfo, SeverityWarning, SeverityError, SeveritySuccess:
		return sev
	default:
		return SeverityInfo
	}
}

// TimestampLayout renders insertion time as wall-clock HH:MM:SS.mmm (UTC).
const TimestampLayout = "15:04:05.000"

// LogEntry is one classified line in the session log.
type LogEntry struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Agent     Agent    `json:"agent"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Payload   Payload  `json:"payload,omitempty"` // nil for locally synthesized notices
}

// Role is the speaker of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message in the chat history.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Refusal is raised at most once per backend response when the turn is blocked.
type Refusal struct {
	Reason string `json:"reason"`
	Source string `json:"source"` // "status" or "veto"
}
