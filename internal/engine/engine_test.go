package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/neurallink/internal/engine/classifier"
	"github.com/crimson-sun/neurallink/internal/engine/testdata"
	"github.com/crimson-sun/neurallink/internal/model"
)

func newTestEngine() *Engine {
	return New(classifier.New())
}

func TestInterpretCorpus(t *testing.T) {
	entries, err := testdata.LoadCorpus()
	require.NoError(t, err)

	e := newTestEngine()
	for _, entry := range entries {
		t.Run(entry.Description, func(t *testing.T) {
			res := e.Interpret(entry.Envelope)

			assert.Equal(t, entry.ExpectedSnapshot, res.Snapshot)
			require.Len(t, res.Lines, len(entry.Envelope.Logs))
			for i, l := range res.Lines {
				assert.Equal(t, entry.ExpectedSeverities[i], l.Severity, "line %d", i)
				assert.Equal(t, entry.Envelope.Logs[i].Msg, l.Message, "line %d message must be untouched", i)
			}

			if entry.ExpectedRefused {
				require.NotNil(t, res.Refusal)
				assert.Equal(t, entry.ExpectedReason, res.Refusal.Reason)
				assert.Empty(t, res.Reply)
			} else {
				assert.Nil(t, res.Refusal)
			}
		})
	}
}

func TestInterpretRiskScenario(t *testing.T) {
	res := newTestEngine().Interpret(model.Envelope{
		Status: "OK",
		Logs:   []model.RawLine{{Agent: "Risk", Msg: `{"severity":"Medium","concerns":["delay"]}`}},
	})
	assert.Equal(t, 60.0, res.Snapshot.Risk)
	assert.Equal(t, 0.0, res.Snapshot.Legal)
	assert.Equal(t, 0.0, res.Snapshot.Confidence)
	assert.Equal(t, 100.0, res.Snapshot.Ethics)

	rv, ok := res.Lines[0].Payload.(model.RiskView)
	require.True(t, ok)
	assert.Equal(t, []string{"delay"}, rv.Concerns)
}

func TestProcessMapsUnknownAgent(t *testing.T) {
	l := newTestEngine().Process(model.RawLine{Agent: "Translator", Msg: "done"})
	assert.Equal(t, model.AgentUnknown, l.Agent)
	assert.Equal(t, model.RawText{Text: "done"}, l.Payload)
	assert.Equal(t, model.SeverityInfo, l.Severity)
}

func TestInterpretReplyText(t *testing.T) {
	e := newTestEngine()

	res := e.Interpret(model.Envelope{Status: "OK", Response: "plain advice"})
	assert.Equal(t, "plain advice", res.Reply)

	res = e.Interpret(model.Envelope{Status: "OK", Response: map[string]any{"advice": "wait"}})
	assert.JSONEq(t, `{"advice":"wait"}`, res.Reply)
}
