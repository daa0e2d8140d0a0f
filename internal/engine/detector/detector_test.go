package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crimson-sun/neurallink/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestDetectStatusRefused(t *testing.T) {
	r, ok := Detect(model.Envelope{Status: "REFUSED", Reason: "applicant underage"}, nil)
	assert.True(t, ok)
	assert.Equal(t, model.Refusal{Reason: "applicant underage", Source: SourceStatus}, r)
}

func TestDetectStatusRefusedWithoutReason(t *testing.T) {
	r, ok := Detect(model.Envelope{Status: "refused"}, nil)
	assert.True(t, ok)
	assert.Equal(t, DefaultReason, r.Reason)
}

func TestDetectFirstVetoWins(t *testing.T) {
	lines := []Line{
		{model.AgentLegal, model.LegalView{}},
		{model.AgentEthics, model.EthicsView{Veto: ptr(false), Reason: ptr("fine")}},
		{model.AgentEthics, model.EthicsView{Veto: ptr(true), Reason: ptr("first")}},
		{model.AgentEthics, model.EthicsView{Veto: ptr(true), Reason: ptr("second")}},
	}
	r, ok := Detect(model.Envelope{Status: "OK"}, lines)
	assert.True(t, ok)
	assert.Equal(t, model.Refusal{Reason: "first", Source: SourceVeto}, r)
}

func TestDetectStatusBeatsVeto(t *testing.T) {
	lines := []Line{{model.AgentEthics, model.EthicsView{Veto: ptr(true), Reason: ptr("veto reason")}}}
	r, ok := Detect(model.Envelope{Status: "REFUSED", Reason: "status reason"}, lines)
	assert.True(t, ok)
	assert.Equal(t, "status reason", r.Reason)
}

func TestDetectIgnoresNonEthicsVeto(t *testing.T) {
	// Only the Ethics agent can veto, even if another payload shape matches.
	lines := []Line{
		{model.AgentRisk, model.EthicsView{Veto: ptr(true)}},
		{model.AgentEthics, model.RawText{Text: `VETO Triggered`}},
	}
	_, ok := Detect(model.Envelope{Status: "SUCCESS"}, lines)
	assert.False(t, ok)
}
