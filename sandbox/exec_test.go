package sandbox

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sovereign-lang/sovereign/errz"
)

func execPolicy(t *testing.T, cfg Config) *Policy {
	t.Helper()
	cfg.Capabilities = append(cfg.Capabilities, CapExec)
	cfg.AllowLocalExec = true
	return newTestPolicy(t, cfg)
}

func TestExecuteEcho(t *testing.T) {
	policy := execPolicy(t, Config{AllowedCommands: []string{"echo"}})
	result, err := policy.Execute(context.Background(), []string{"echo", "Sovereign"})
	require.NoError(t, err)
	assert.Equal(t, "Sovereign\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, result.TimedOut)
	assert.False(t, result.Truncated)
}

func TestExecuteDeniedCommand(t *testing.T) {
	policy := execPolicy(t, Config{AllowedCommands: []string{"echo"}})
	_, err := policy.Execute(context.Background(), []string{"rm", "--help"})
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Sandbox))
}

func TestExecuteRequiresCapability(t *testing.T) {
	policy := newTestPolicy(t, Config{
		AllowedCommands: []string{"echo"},
		AllowLocalExec:  true,
	})
	_, err := policy.Execute(context.Background(), []string{"echo", "hi"})
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Sandbox))
	assert.Contains(t, err.Error(), "exec")
}

func TestExecuteRequiresLocalExecOverride(t *testing.T) {
	policy := newTestPolicy(t, Config{
		Capabilities:    []string{CapExec},
		AllowedCommands: []string{"echo"},
	})
	_, err := policy.Execute(context.Background(), []string{"echo", "hi"})
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Sandbox))
	assert.Contains(t, err.Error(), "local execution is disabled")
}

func TestExecuteTruncatesOutput(t *testing.T) {
	policy := execPolicy(t, Config{
		AllowedCommands: []string{"echo"},
		MaxOutputKB:     1,
	})
	// 2047 bytes of payload plus echo's newline: 2048 captured bytes
	// against a 1024 byte limit.
	payload := strings.Repeat("x", 2047)
	result, err := policy.Execute(context.Background(), []string{"echo", payload})
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Less(t, len(result.Stdout), 2048)
	assert.True(t, strings.HasSuffix(result.Stdout, TruncationMarker))
}

func TestExecuteSmallOutputNotTruncated(t *testing.T) {
	policy := execPolicy(t, Config{
		AllowedCommands: []string{"echo"},
		MaxOutputKB:     1,
	})
	payload := strings.Repeat("y", 99)
	result, err := policy.Execute(context.Background(), []string{"echo", payload})
	require.NoError(t, err)
	assert.False(t, result.Truncated)
	assert.Equal(t, payload+"\n", result.Stdout)
}

func TestExecuteTimeout(t *testing.T) {
	policy := execPolicy(t, Config{
		AllowedCommands: []string{"sleep"},
		Timeout:         100 * time.Millisecond,
	})
	start := time.Now()
	result, err := policy.Execute(context.Background(), []string{"sleep", "5"})
	require.NoError(t, err)
	assert.True(t, result.TimedOut)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecuteExitCode(t *testing.T) {
	policy := execPolicy(t, Config{AllowedCommands: []string{"false"}})
	result, err := policy.Execute(context.Background(), []string{"false"})
	require.NoError(t, err)
	assert.NotEqual(t, 0, result.ExitCode)
}
