// Package detector decides whether a backend response must be treated as a
// refusal.
package detector

import (
	"strings"

	"github.com/crimson-sun/neurallink/internal/model"
)

// DefaultReason is surfaced when a refusal signal carries no reason.
const DefaultReason = "no reason provided"

// Refusal sources.
const (
	SourceStatus = "status"
	SourceVeto   = "veto"
)

// Line is one interpreted log line as seen by the detector.
type Line struct {
	Agent   model.Agent
	Payload model.Payload
}

// Detect returns at most one refusal for the envelope. A REFUSED status wins
// and supplies the reason; otherwise the first Ethics line carrying
// veto == true does. Later vetoes in the same batch are ignored here.
func Detect(env model.Envelope, lines []Line) (model.Refusal, bool) {
	if env.Refused() {
		return model.Refusal{Reason: reasonOrDefault(env.Reason), Source: SourceStatus}, true
	}
	for _, l := range lines {
		if l.Agent != model.AgentEthics {
			continue
		}
		ev, ok := l.Payload.(model.EthicsView)
		if !ok || !ev.Vetoed() {
			continue
		}
		reason := ""
		if ev.Reason != nil {
			reason = *ev.Reason
		}
		return model.Refusal{Reason: reasonOrDefault(reason), Source: SourceVeto}, true
	}
	return model.Refusal{}, false
}

func reasonOrDefault(reason string) string {
	if r := strings.TrimSpace(reason); r != "" {
		return r
	}
	return DefaultReason
}
