package android_emu

import (
	"context"
	"testing"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logcatCommand = "adb -s emulator-5554 logcat -v threadtime"

func newLogcatRunner() *testutil.FakeRunner {
	return testutil.NewFakeRunner().
		On("adb devices", adbDevices, nil).
		On("adb -s emulator-5554 emu avd name", "Pixel_7\nOK\n", nil).
		On(logcatCommand, "01-02 03:04:05.000  1234  1234 I ActivityManager: Start proc\n01-02 03:04:06.000  1234  1234 W System: low memory\n", nil)
}

func TestLogcatLifecycle(t *testing.T) {
	runner := newLogcatRunner()
	emulators := newEmulators(t, runner, models.Settings{})
	emulators.ProcessLogsDir = t.TempDir()
	ctx := context.Background()

	require.NoError(t, emulators.StartLogcat(ctx, "Pixel_7"))
	require.NoError(t, emulators.StartLogcat(ctx, "Pixel_7"))
	assert.Equal(t, []string{logcatCommand}, runner.Started)

	lines, err := emulators.LogcatLines("Pixel_7", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"01-02 03:04:06.000  1234  1234 W System: low memory"}, lines)

	require.NoError(t, emulators.StopLogcat("Pixel_7"))
	assert.Equal(t, []string{logcatCommand}, runner.Stopped)
	assert.ErrorIs(t, emulators.StopLogcat("Pixel_7"), ErrLogcatNotRunning)

	lines, err = emulators.LogcatLines("Pixel_7", 10)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestLogcatRestartsAfterExit(t *testing.T) {
	runner := newLogcatRunner()
	emulators := newEmulators(t, runner, models.Settings{})
	emulators.ProcessLogsDir = t.TempDir()
	ctx := context.Background()

	require.NoError(t, emulators.StartLogcat(ctx, "Pixel_7"))
	emulators.logcats["Pixel_7"].(*testutil.FakeProcess).Exit()

	assert.ErrorIs(t, emulators.StopLogcat("Pixel_7"), ErrLogcatNotRunning)
	require.NoError(t, emulators.StartLogcat(ctx, "Pixel_7"))
	assert.Equal(t, []string{logcatCommand, logcatCommand}, runner.Started)
}

func TestLogcatNotRunningEmulator(t *testing.T) {
	runner := testutil.NewFakeRunner().On("adb devices", "List of devices attached\n", nil)
	emulators := newEmulators(t, runner, models.Settings{})
	emulators.ProcessLogsDir = t.TempDir()

	assert.ErrorIs(t, emulators.StartLogcat(context.Background(), "Pixel_7"), gateway.ErrDeviceNotFound)
	assert.Empty(t, runner.Started)

	_, err := emulators.LogcatLines("Pixel_7", 10)
	assert.ErrorIs(t, err, ErrLogcatNotRunning)
}

func TestLogcatWithoutProcessLogs(t *testing.T) {
	emulators := newEmulators(t, newLogcatRunner(), models.Settings{})

	assert.ErrorIs(t, emulators.StartLogcat(context.Background(), "Pixel_7"), ErrLogcatDisabled)
	_, err := emulators.LogcatLines("Pixel_7", 10)
	assert.ErrorIs(t, err, ErrLogcatDisabled)
}
