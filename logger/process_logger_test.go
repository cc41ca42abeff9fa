package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessLoggerWritesEntries(t *testing.T) {
	dir := t.TempDir()
	processLogger, err := NewProcessLogger(dir, "logcat", "Pixel 7:API/34")
	require.NoError(t, err)

	_, err = processLogger.Write([]byte("first line\nsecond "))
	require.NoError(t, err)
	_, err = processLogger.Write([]byte("line\n\ntrailing"))
	require.NoError(t, err)
	require.NoError(t, processLogger.Close())

	path := ProcessLogPath(dir, "logcat", "Pixel 7:API/34")
	assert.Equal(t, filepath.Join(dir, "logcat_Pixel_7_API_34.log"), path)

	messages, err := ProcessLogMessages(path, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line", "trailing"}, messages)

	messages, err = ProcessLogMessages(path, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"trailing"}, messages)
}

func TestTailLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provider.log")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n4\n"), 0644))

	lines, err := TailLines(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, lines)

	_, err = TailLines(filepath.Join(t.TempDir(), "missing.log"), 2)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
