package android_emu

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shamanec/GADS-emulator-manager/logger"
)

const logcatLogName = "logcat"

var (
	ErrLogcatNotRunning = errors.New("logcat is not running")
	ErrLogcatDisabled   = errors.New("process logs are disabled")
)

// StartLogcat streams the logcat of a running emulator into its own process
// log. A capture that is still running is kept.
func (e *Emulators) StartLogcat(ctx context.Context, name string) error {
	if e.ProcessLogsDir == "" {
		return fmt.Errorf("could not capture logcat of `%s`: %w", name, ErrLogcatDisabled)
	}
	if e.logcatRunning(name) {
		return nil
	}

	serial, err := e.serialFor(ctx, name)
	if err != nil {
		return err
	}

	out, err := logger.NewProcessLogger(e.ProcessLogsDir, logcatLogName, name)
	if err != nil {
		return err
	}
	process, err := e.runner.Spawn(out, ADBPath(e.settings()), "-s", serial, "logcat", "-v", "threadtime")
	if err != nil {
		return err
	}

	e.logcatMu.Lock()
	defer e.logcatMu.Unlock()
	if existing, ok := e.logcats[name]; ok && !exited(existing.Done()) {
		process.Stop()
		return nil
	}
	e.logcats[name] = process
	e.logger.LogInfo("android_logcat", fmt.Sprintf("Capturing logcat of `%s` on `%s`", name, serial))
	return nil
}

func (e *Emulators) StopLogcat(name string) error {
	e.logcatMu.Lock()
	process, ok := e.logcats[name]
	delete(e.logcats, name)
	e.logcatMu.Unlock()

	if !ok || exited(process.Done()) {
		return fmt.Errorf("emulator `%s`: %w", name, ErrLogcatNotRunning)
	}
	process.Stop()
	e.logger.LogInfo("android_logcat", fmt.Sprintf("Stopped logcat of `%s`", name))
	return nil
}

// LogcatLines returns the last n captured logcat lines of an emulator, the
// capture does not have to be running anymore
func (e *Emulators) LogcatLines(name string, n int) ([]string, error) {
	if e.ProcessLogsDir == "" {
		return nil, fmt.Errorf("could not read logcat of `%s`: %w", name, ErrLogcatDisabled)
	}
	lines, err := logger.ProcessLogMessages(logger.ProcessLogPath(e.ProcessLogsDir, logcatLogName, name), n)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no logcat captured for `%s`: %w", name, ErrLogcatNotRunning)
	}
	return lines, err
}

func (e *Emulators) logcatRunning(name string) bool {
	e.logcatMu.Lock()
	defer e.logcatMu.Unlock()
	process, ok := e.logcats[name]
	return ok && !exited(process.Done())
}

func exited(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}
