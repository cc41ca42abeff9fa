package util

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellRunnerOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	runner := NewShellRunner(5 * time.Second)

	output, err := runner.Output(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(output))

	_, err = runner.Output(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestShellRunnerSpawnStop(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	runner := NewShellRunner(5 * time.Second)

	process, err := runner.Spawn(nil, "sleep", "30")
	require.NoError(t, err)
	select {
	case <-process.Done():
		t.Fatal("process exited before it was stopped")
	default:
	}

	process.Stop()
	select {
	case <-process.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process was not stopped")
	}
	process.Stop()
}
