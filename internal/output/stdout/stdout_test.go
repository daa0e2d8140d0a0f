package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/model"
)

func testEntry() model.LogEntry {
	veto := true
	return model.LogEntry{
		ID:        "7f0e2c4a-9d61-4b0b-8f4e-1d2c3b4a5f60",
		Timestamp: "12:00:00.000",
		Agent:     model.AgentEthics,
		Message:   `{"veto": true, "reason": "evidence tampering"}`,
		Severity:  model.SeverityError,
		Payload:   model.EthicsView{Veto: &veto},
	}
}

func TestNDJSONLine(t *testing.T) {
	var buf bytes.Buffer
	out := New(compactor.Standard, false, WithWriter(&buf))
	require.NoError(t, out.Write(context.Background(), testEntry()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &m))
	assert.Equal(t, "Ethics", m["agent"])
	assert.Equal(t, "error", m["severity"])
	payload, ok := m["payload"].(map[string]any)
	require.True(t, ok, "payload object expected at Standard, got %T", m["payload"])
	assert.Equal(t, true, payload["veto"])
}

func TestMinimalOmitsPayload(t *testing.T) {
	var buf bytes.Buffer
	out := New(compactor.Minimal, false, WithWriter(&buf))
	require.NoError(t, out.Write(context.Background(), testEntry()))
	assert.NotContains(t, buf.String(), `"payload"`)
}

func TestConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	out := New(compactor.Full, true, WithWriter(&buf))
	require.NoError(t, out.Write(context.Background(), testEntry()))
	require.NoError(t, out.Write(context.Background(), model.LogEntry{
		Timestamp: "12:00:01.250",
		Agent:     model.AgentSystem,
		Message:   "Session Initialized. Neural Link Active.",
		Severity:  model.SeveritySuccess,
	}))

	assert.Equal(t,
		"[12:00:00.000] Ethics! {\"veto\": true, \"reason\": \"evidence tampering\"}\n"+
			"[12:00:01.250] System> Session Initialized. Neural Link Active.\n",
		buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteErrorWrapped(t *testing.T) {
	out := New(compactor.Full, true, WithWriter(failingWriter{}))
	err := out.Write(context.Background(), testEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.NoError(t, out.Close())
}

func TestConcurrentWritesKeepLinesWhole(t *testing.T) {
	var buf bytes.Buffer
	out := New(compactor.Full, false, WithWriter(&buf))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = out.Write(context.Background(), testEntry())
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.True(t, json.Valid([]byte(l)), l)
	}
}
