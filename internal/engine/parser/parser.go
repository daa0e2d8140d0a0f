// Package parser turns raw agent log messages into typed payload views.
//
// Parsing is total: malformed, partial or plain-text messages degrade to
// model.RawText and never surface as errors.
package parser

import (
	"encoding/json"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/neurallink/internal/model"
)

// Parse interprets raw according to the declared agent.
// System, Coordinator and Unknown messages are always RawText.
func Parse(agent model.Agent, raw string) model.Payload {
	switch agent {
	case model.AgentLegal, model.AgentRisk, model.AgentEthics, model.AgentConfidence:
	default:
		return model.RawText{Text: raw}
	}

	fields, ok := decodeObject(raw)
	if !ok {
		return model.RawText{Text: raw}
	}

	switch agent {
	case model.AgentLegal:
		return model.LegalView{
			Sections:  stringList(fields, "sections"),
			Reasoning: stringField(fields, "reasoning"),
			Advice:    stringField(fields, "advice"),
		}
	case model.AgentRisk:
		return model.RiskView{
			Severity: stringField(fields, "severity"),
			Concerns: concerns(fields),
		}
	case model.AgentEthics:
		return model.EthicsView{
			Veto:   boolField(fields, "veto"),
			Reason: stringField(fields, "reason"),
		}
	default:
		v := model.ConfidenceView{
			Reasoning:        stringField(fields, "reasoning"),
			RefusalTriggered: boolField(fields, "refusal_triggered"),
		}
		if score := numberField(fields, "score"); score != nil {
			clamped := model.ClampScore(*score)
			v.Score = &clamped
		}
		return v
	}
}

// decodeObject extracts the first balanced candidate and decodes it as a
// JSON object. Only that first candidate is tried.
func decodeObject(raw string) (map[string]any, bool) {
	candidate, ok := Extract(raw)
	if !ok {
		return nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(norm.NFC.String(candidate)), &fields); err != nil {
		return nil, false
	}
	return fields, fields != nil
}

func stringField(fields map[string]any, key string) *string {
	s, ok := fields[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func boolField(fields map[string]any, key string) *bool {
	b, ok := fields[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func numberField(fields map[string]any, key string) *float64 {
	n, ok := fields[key].(float64)
	if !ok || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil
	}
	return &n
}

// stringList returns the field as a list when every element is a string.
// Mixed or non-list values count as a wrong-typed field.
func stringList(fields map[string]any, key string) []string {
	items, ok := fields[key].([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func concerns(fields map[string]any) []string {
	if s, ok := fields["concerns"].(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	}
	return stringList(fields, "concerns")
}
