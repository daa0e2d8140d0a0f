package model

import "strings"

// Agent identifies the backend subsystem that emitted a log line.
type Agent string

const (
	AgentSystem      Agent = "System"
	AgentLegal       Agent = "Legal"
	AgentRisk        Agent = "Risk"
	AgentEthics      Agent = "Ethics"
	AgentConfidence  Agent = "Confidence"
	AgentCoordinator Agent = "Coordinator"
	AgentUnknown     Agent = "Unknown"
)

var knownAgents = []Agent{
	AgentSystem,
	AgentLegal,
	AgentRisk,
	AgentEthics,
	AgentConfidence,
	AgentCoordinator,
}

// ParseAgent maps a backend agent tag onto the closed agent set.
// Matching ignores case and surrounding whitespace; anything else is AgentUnknown.
func ParseAgent(tag string) Agent {
	tag = strings.TrimSpace(tag)
	for _, a := range knownAgents {
		if strings.EqualFold(tag, string(a)) {
			return a
		}
	}
	return AgentUnknown
}

// Agents returns the known agents in display order, excluding AgentUnknown.
func Agents() []Agent {
	out := make([]Agent, len(knownAgents))
	copy(out, knownAgents)
	return out
}
