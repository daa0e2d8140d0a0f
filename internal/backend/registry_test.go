package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/neurallink/internal/model"
)

type stubAnalyzer struct{ endpoint string }

func (s stubAnalyzer) Analyze(context.Context, string) (model.Envelope, error) {
	return model.Envelope{Response: s.endpoint}, nil
}

func TestRegistry_RegisterAndNew(t *testing.T) {
	Register("stub-test", func(cfg Config) (Analyzer, error) {
		return stubAnalyzer{endpoint: cfg.Endpoint}, nil
	})

	assert.Contains(t, Providers(), "stub-test")

	a, err := New("stub-test", Config{Endpoint: "http://stub"})
	require.NoError(t, err)
	env, err := a.Analyze(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "http://stub", env.Response)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	_, err := Get("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestRegistry_ConstructorErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	Register("broken-test", func(Config) (Analyzer, error) { return nil, boom })

	_, err := New("broken-test", Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken-test")
}

func TestProvidersSorted(t *testing.T) {
	Register("zz-test", func(Config) (Analyzer, error) { return stubAnalyzer{}, nil })
	Register("aa-test", func(Config) (Analyzer, error) { return stubAnalyzer{}, nil })

	names := Providers()
	assert.IsNonDecreasing(t, names)
}

func TestConfigLoggerOrNop(t *testing.T) {
	assert.NotNil(t, Config{}.LoggerOrNop())
}
