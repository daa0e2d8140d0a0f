package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/config"
	"github.com/crimson-sun/neurallink/internal/model"
)

const script = `
steps:
  - status: OK
    response: "Keep every receipt."
    logs:
      - agent: Legal
        msg: '{"sections": ["Tenancy Act s.21"]}'
      - agent: Risk
        msg: '{"severity": "medium"}'
  - status: REFUSED
    reason: applicant underage
`

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))
	return path
}

// resetFlags restores package-level flag state between command runs.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath, endpoint, backendArg, scriptPath, verbose = "", "", "", "", false
		cfg = config.Config{}
		logger = zap.NewNop()
		zap.ReplaceGlobals(zap.NewNop())
	})
	for _, k := range []string{"NEURALLINK_BACKEND", "NEURALLINK_SCRIPT", "NEURALLINK_OUTPUT", "NEURALLINK_LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestAskWithReplayScript(t *testing.T) {
	resetFlags(t)
	path := writeScript(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"ask", "--script", path, "Can my landlord keep the deposit?", "I am 15"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	got := out.String()
	assert.Contains(t, got, "user:     Can my landlord keep the deposit?")
	assert.Contains(t, got, "assistant: Keep every receipt.")
	assert.Contains(t, got, "SYSTEM REFUSAL: applicant underage")
	assert.Contains(t, got, "refused (status): applicant underage")
	assert.Contains(t, got, "\nconfidence: legal=")
	assert.NotContains(t, got, "refused: no")
}

func TestAskWritesFileOutput(t *testing.T) {
	resetFlags(t)
	path := writeScript(t)
	ndjson := filepath.Join(t.TempDir(), "entries.ndjson")
	t.Setenv("NEURALLINK_OUTPUT", "file")
	t.Setenv("NEURALLINK_OUTPUT_PATH", ndjson)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"ask", "--script", path, "first question"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(ndjson)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// init, processing notice, Legal, Risk
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"agent":"System"`)
	assert.Contains(t, lines[2], `"agent":"Legal"`)
}

func TestHealthReplay(t *testing.T) {
	resetFlags(t)
	path := writeScript(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"health", "--script", path})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "replay backend ok")
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	resetFlags(t)
	endpoint = "http://flag:9000"
	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9000", c.Backend.Endpoint)
	assert.Equal(t, "http", c.Backend.Provider)

	scriptPath = "demo.yaml"
	c, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "replay", c.Backend.Provider)

	backendArg = "nope"
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestBuildOutput(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	out, err := buildOutput(config.OutputConfig{Format: "none"}, "", logger, false)
	require.NoError(t, err)
	assert.Nil(t, out)

	// stdout is dropped in interactive mode, leaving nothing.
	out, err = buildOutput(config.OutputConfig{Format: "stdout", Verbosity: "standard"}, "", logger, true)
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = buildOutput(config.OutputConfig{
		Format:     "stdout,file,webhook",
		Path:       filepath.Join(dir, "x.ndjson"),
		Verbosity:  "minimal",
		WebhookURL: "http://127.0.0.1:1/entries",
	}, "", logger, false)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NoError(t, out.Close())

	_, err = buildOutput(config.OutputConfig{Format: "file", Path: filepath.Join(dir, "missing", "x.ndjson")}, "", logger, false)
	assert.Error(t, err)
}

func TestWebhookAgents(t *testing.T) {
	assert.Nil(t, webhookAgents(""))
	assert.Equal(t, []model.Agent{model.AgentEthics, model.AgentCoordinator, model.AgentUnknown},
		webhookAgents(" ethics, Coordinator ,,judge"))
}

func TestOutputsToStdout(t *testing.T) {
	assert.True(t, outputsToStdout(config.Config{Output: config.OutputConfig{Format: "file, stdout"}}))
	assert.False(t, outputsToStdout(config.Config{Output: config.OutputConfig{Format: "file"}}))
}
