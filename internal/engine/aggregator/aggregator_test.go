package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crimson-sun/neurallink/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestTurnDefaults(t *testing.T) {
	a := New()
	assert.Equal(t, model.ConfidenceVector{Legal: 0, Risk: 0, Ethics: 100, Confidence: 0}, a.Snapshot())
}

func TestRiskSeverityCaseInsensitive(t *testing.T) {
	tests := []struct {
		severity string
		want     float64
	}{
		{"HIGH risk", RiskHigh},
		{"High", RiskHigh},
		{"very hIgH", RiskHigh},
		{"Medium", RiskMedium},
		{"MEDIUM-ish", RiskMedium},
		{"medium to high", RiskHigh},
		{"Low", RiskLow},
		{"", RiskLow},
	}
	for _, tt := range tests {
		a := New()
		a.Observe(model.AgentRisk, model.RiskView{Severity: ptr(tt.severity)})
		assert.Equal(t, tt.want, a.Snapshot().Risk, "severity=%q", tt.severity)
	}
}

func TestRiskUnparseableFallsToLowBucket(t *testing.T) {
	a := New()
	a.Observe(model.AgentRisk, model.RawText{Text: "risk looks high"})
	assert.Equal(t, float64(RiskLow), a.Snapshot().Risk)

	a = New()
	a.Observe(model.AgentRisk, model.RiskView{Concerns: []string{"delay"}})
	assert.Equal(t, float64(RiskLow), a.Snapshot().Risk)
}

func TestLegalRules(t *testing.T) {
	a := New()
	a.Observe(model.AgentLegal, model.LegalView{Sections: []string{"IPC 420"}})
	assert.Equal(t, float64(LegalWithSections), a.Snapshot().Legal)

	a = New()
	a.Observe(model.AgentLegal, model.LegalView{Advice: ptr("wait")})
	assert.Equal(t, float64(LegalWithoutSections), a.Snapshot().Legal)

	a = New()
	a.Observe(model.AgentLegal, model.RawText{Text: "no json"})
	assert.Equal(t, 0.0, a.Snapshot().Legal)
}

func TestConfidenceScoreClamped(t *testing.T) {
	for _, score := range []float64{-50, 0, 55, 100, 250} {
		a := New()
		a.Observe(model.AgentConfidence, model.ConfidenceView{Score: ptr(score)})
		got := a.Snapshot().Confidence
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
		assert.Equal(t, model.ClampScore(score), got)
	}
}

func TestConfidenceWithoutScoreUnchanged(t *testing.T) {
	a := New()
	a.Observe(model.AgentConfidence, model.ConfidenceView{Score: ptr(70.0)})
	a.Observe(model.AgentConfidence, model.ConfidenceView{Reasoning: ptr("unsure")})
	a.Observe(model.AgentConfidence, model.RawText{Text: "Score: 12%"})
	assert.Equal(t, 70.0, a.Snapshot().Confidence)
}

func TestLaterEntriesOverride(t *testing.T) {
	got := Aggregate([]Observation{
		{model.AgentRisk, model.RiskView{Severity: ptr("High")}},
		{model.AgentLegal, model.LegalView{}},
		{model.AgentRisk, model.RiskView{Severity: ptr("medium")}},
		{model.AgentLegal, model.LegalView{Sections: []string{"s"}}},
	})
	assert.Equal(t, model.ConfidenceVector{Legal: 90, Risk: 60, Ethics: 100, Confidence: 0}, got)
}

func TestEthicsVetoDoesNotLowerAxis(t *testing.T) {
	got := Aggregate([]Observation{
		{model.AgentEthics, model.EthicsView{Veto: ptr(true), Reason: ptr("minor")}},
	})
	assert.Equal(t, 100.0, got.Ethics)
}

func TestResetRestoresDefaults(t *testing.T) {
	a := New()
	a.Observe(model.AgentConfidence, model.ConfidenceView{Score: ptr(80.0)})
	a.Reset()
	assert.Equal(t, model.TurnDefaults(), a.Snapshot())
}
