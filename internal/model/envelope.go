package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusRefused is the envelope status the backend uses for a blocked turn.
// Any other status is treated as a normal answer.
const StatusRefused = "REFUSED"

// Envelope is the backend's reply to one submitted chat turn.
type Envelope struct {
	Status   string    `json:"status" yaml:"status"`
	Response any       `json:"response,omitempty" yaml:"response,omitempty"` // string or object
	Reason   string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Logs     []RawLine `json:"logs,omitempty" yaml:"logs,omitempty"`
}

// RawLine is one agent log line as sent by the backend, before interpretation.
type RawLine struct {
	Agent string `json:"agent" yaml:"agent"`
	Msg   string `json:"msg" yaml:"msg"`
}

// Refused reports whether the top-level status marks the turn as refused.
func (e Envelope) Refused() bool {
	return strings.EqualFold(strings.TrimSpace(e.Status), StatusRefused)
}

// ResponseText renders the response for the chat history: strings verbatim,
// anything else as compact JSON.
func (e Envelope) ResponseText() string {
	switch v := e.Response.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(normalizeYAML(v))
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// normalizeYAML rewrites map[any]any nodes into map[string]any so values
// decoded from YAML scripts marshal as JSON.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalizeYAML(val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
