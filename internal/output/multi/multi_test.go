package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/neurallink/internal/model"
)

// recorder keeps what it was given.
type recorder struct {
	entries []model.LogEntry
	closed  bool
	err     error
}

func (r *recorder) Write(_ context.Context, entry model.LogEntry) error {
	r.entries = append(r.entries, entry)
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return r.err
}

func entry(agent model.Agent, msg string) model.LogEntry {
	return model.LogEntry{
		ID:        msg,
		Timestamp: "10:00:00.000",
		Agent:     agent,
		Message:   msg,
		Severity:  model.SeverityInfo,
	}
}

func TestFanOut(t *testing.T) {
	a, b, c := &recorder{}, &recorder{}, &recorder{}
	m := New(a, b, c)

	require.NoError(t, m.Write(context.Background(), entry(model.AgentLegal, "sections found")))
	for _, r := range []*recorder{a, b, c} {
		require.Len(t, r.entries, 1)
		assert.Equal(t, "sections found", r.entries[0].Message)
	}
}

func TestFailureDoesNotStopDelivery(t *testing.T) {
	failing := &recorder{err: errors.New("disk full")}
	healthy := &recorder{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), entry(model.AgentSystem, "Backend unreachable"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output 0: disk full")
	assert.Len(t, failing.entries, 1)
	assert.Len(t, healthy.entries, 1)
}

func TestCloseReachesEveryOutput(t *testing.T) {
	a := &recorder{err: errors.New("err-a")}
	b := &recorder{err: errors.New("err-b")}

	err := New(a, b).Close()
	require.Error(t, err)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Contains(t, err.Error(), "err-a")
	assert.Contains(t, err.Error(), "err-b")

	assert.NoError(t, New(&recorder{}).Close())
}

func TestFilterByAgent(t *testing.T) {
	all := &recorder{}
	vetoes := &recorder{}
	m := New(all, Filter(vetoes, Agents(model.AgentEthics, model.AgentCoordinator)))

	ctx := context.Background()
	for _, e := range []model.LogEntry{
		entry(model.AgentLegal, "a"),
		entry(model.AgentEthics, "b"),
		entry(model.AgentRisk, "c"),
		entry(model.AgentCoordinator, "d"),
	} {
		require.NoError(t, m.Write(ctx, e))
	}

	assert.Len(t, all.entries, 4)
	require.Len(t, vetoes.entries, 2)
	assert.Equal(t, "b", vetoes.entries[0].Message)
	assert.Equal(t, "d", vetoes.entries[1].Message)

	require.NoError(t, m.Close())
	assert.True(t, vetoes.closed)
}

func TestAgentsEmptyKeepsAll(t *testing.T) {
	keep := Agents()
	assert.True(t, keep(entry(model.AgentUnknown, "x")))
}
