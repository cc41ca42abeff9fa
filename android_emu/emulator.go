// Package android_emu drives Android Virtual Devices through the SDK
// `emulator`, `adb` and `avdmanager` tools. AVD names are the device ids.
package android_emu

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/util"
)

type Emulators struct {
	runner   util.Runner
	settings func() models.Settings
	logger   *logger.CustomLogger
	// AVDHome is where <name>.avd/config.ini files are read from
	AVDHome string
	// ProcessLogsDir receives the output of started emulators, empty disables it
	ProcessLogsDir string
	now            func() time.Time

	logcatMu sync.Mutex
	logcats  map[string]util.Process
}

var (
	_ gateway.Backend = (*Emulators)(nil)
	_ gateway.Eraser  = (*Emulators)(nil)
)

func New(runner util.Runner, settings func() models.Settings, log *logger.CustomLogger) *Emulators {
	return &Emulators{
		runner:   runner,
		settings: settings,
		logger:   log,
		AVDHome:  DefaultAVDHome(),
		now:      time.Now,
		logcats:  make(map[string]util.Process),
	}
}

func (e *Emulators) List(ctx context.Context) ([]models.EmulatorRecord, error) {
	settings := e.settings()
	output, err := e.runner.Output(ctx, EmulatorPath(settings), "-list-avds")
	if err != nil {
		return nil, err
	}

	running, err := e.runningAVDs(ctx)
	if err != nil {
		e.logger.LogDebug("android_emulator", fmt.Sprintf("Could not get running emulators, reporting all as stopped - %s", err))
	}

	records := []models.EmulatorRecord{}
	for _, name := range parseAVDList(output) {
		info := readAVDInfo(e.AVDHome, name)
		status := models.StatusStopped
		if _, ok := running[name]; ok {
			status = models.StatusRunning
		}
		records = append(records, models.EmulatorRecord{
			ID:         name,
			Name:       name,
			DeviceType: info.DeviceType,
			OSVersion:  info.OSVersion,
			Status:     string(status),
		})
	}
	return records, nil
}

// runningAVDs maps AVD names to the adb serials of the running emulators
func (e *Emulators) runningAVDs(ctx context.Context) (map[string]string, error) {
	adb := ADBPath(e.settings())
	output, err := e.runner.Output(ctx, adb, "devices")
	if err != nil {
		return nil, err
	}

	running := make(map[string]string)
	for _, serial := range parseEmulatorSerials(output) {
		nameOutput, err := e.runner.Output(ctx, adb, "-s", serial, "emu", "avd", "name")
		if err != nil {
			e.logger.LogDebug("android_emulator", fmt.Sprintf("Could not get AVD name of `%s` - %s", serial, err))
			continue
		}
		if name := firstLine(nameOutput); name != "" {
			running[name] = serial
		}
	}
	return running, nil
}

func (e *Emulators) serialFor(ctx context.Context, name string) (string, error) {
	running, err := e.runningAVDs(ctx)
	if err != nil {
		return "", err
	}
	serial, ok := running[name]
	if !ok {
		return "", fmt.Errorf("emulator `%s` is not running: %w", name, gateway.ErrDeviceNotFound)
	}
	return serial, nil
}

func (e *Emulators) Start(ctx context.Context, name string) error {
	e.logger.LogInfo("android_emulator", fmt.Sprintf("Starting emulator `%s`", name))
	return e.runner.Start(ctx, e.processLog(name), EmulatorPath(e.settings()), "-avd", name)
}

// Stop kills the emulator console when force kill is enabled, otherwise
// powers the guest off
func (e *Emulators) Stop(ctx context.Context, name string) error {
	serial, err := e.serialFor(ctx, name)
	if err != nil {
		return err
	}

	settings := e.settings()
	if settings.AndroidForceKill {
		e.logger.LogInfo("android_emulator", fmt.Sprintf("Killing emulator `%s` on `%s`", name, serial))
		_, err = e.runner.Output(ctx, ADBPath(settings), "-s", serial, "emu", "kill")
		return err
	}

	e.logger.LogInfo("android_emulator", fmt.Sprintf("Powering off emulator `%s` on `%s`", name, serial))
	_, err = e.runner.Output(ctx, ADBPath(settings), "-s", serial, "shell", "reboot", "-p")
	return err
}

func (e *Emulators) Delete(ctx context.Context, name string) error {
	e.logger.LogInfo("android_emulator", fmt.Sprintf("Deleting AVD `%s`", name))
	_, err := e.runner.Output(ctx, AVDManagerPath(e.settings()), "delete", "avd", "-n", name)
	return err
}

// Wipe boots the AVD with its user data reset
func (e *Emulators) Wipe(ctx context.Context, name string) error {
	e.logger.LogInfo("android_emulator", fmt.Sprintf("Wiping data of AVD `%s`", name))
	return e.runner.Start(ctx, e.processLog(name), EmulatorPath(e.settings()), "-avd", name, "-wipe-data")
}

func (e *Emulators) Screenshot(ctx context.Context, name string) (string, error) {
	serial, err := e.serialFor(ctx, name)
	if err != nil {
		return "", err
	}

	settings := e.settings()
	image, err := e.runner.Output(ctx, ADBPath(settings), "-s", serial, "exec-out", "screencap", "-p")
	if err != nil {
		return "", err
	}
	if len(image) == 0 {
		return "", fmt.Errorf("screencap of `%s` returned no data", name)
	}

	dir := settings.ScreenshotDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, util.ScreenshotFileName(name, e.now()))
	if err := os.WriteFile(path, image, 0644); err != nil {
		return "", fmt.Errorf("could not write screenshot - %w", err)
	}
	return path, nil
}

func (e *Emulators) processLog(name string) io.WriteCloser {
	if e.ProcessLogsDir == "" {
		return nil
	}
	processLogger, err := logger.NewProcessLogger(e.ProcessLogsDir, string(models.PlatformAndroid), name)
	if err != nil {
		e.logger.LogWarn("android_emulator", fmt.Sprintf("Could not create process log for `%s` - %s", name, err))
		return nil
	}
	return processLogger
}

// Newer emulator builds print INFO/WARNING lines before the AVD names
func parseAVDList(output []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.Contains(line, "|") {
			continue
		}
		names = append(names, line)
	}
	return names
}

func parseEmulatorSerials(output []byte) []string {
	var serials []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "emulator-") {
			continue
		}
		if fields[1] == "device" {
			serials = append(serials, fields[0])
		}
	}
	return serials
}

func firstLine(output []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(line)
}
