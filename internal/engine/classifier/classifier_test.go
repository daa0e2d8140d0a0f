package classifier

import (
	"testing"

	"github.com/crimson-sun/neurallink/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestClassify(t *testing.T) {
	c := New()
	tests := []struct {
		name    string
		agent   model.Agent
		raw     string
		payload model.Payload
		want    model.Severity
	}{
		{"ethics veto payload", model.AgentEthics, "", model.EthicsView{Veto: ptr(true)}, model.SeverityError},
		{"ethics veto text", model.AgentEthics, "VETO Triggered", model.RawText{Text: "VETO Triggered"}, model.SeverityError},
		{"ethics approve", model.AgentEthics, "", model.EthicsView{Veto: ptr(false)}, model.SeverityInfo},
		{"ethics reason mentions veto", model.AgentEthics, "", model.EthicsView{Reason: ptr("no veto")}, model.SeverityInfo},
		{"risk high", model.AgentRisk, "", model.RiskView{Severity: ptr("HIGH")}, model.SeverityWarning},
		{"risk medium", model.AgentRisk, "", model.RiskView{Severity: ptr("Medium")}, model.SeverityInfo},
		{"confidence refusal", model.AgentConfidence, "", model.ConfidenceView{RefusalTriggered: ptr(true)}, model.SeverityWarning},
		{"legal", model.AgentLegal, "", model.LegalView{}, model.SeverityInfo},
		{"unknown", model.AgentUnknown, "VETO", model.RawText{Text: "VETO"}, model.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.agent, tt.raw, tt.payload); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
