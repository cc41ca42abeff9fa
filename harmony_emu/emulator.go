// Package harmony_emu drives HarmonyOS emulators through `hdctool` and `hdc`.
// There is no delete or wipe support for HarmonyOS emulators.
package harmony_emu

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/util"
)

const remoteScreenshotPath = "/data/local/tmp/screenshot.png"

type Emulators struct {
	runner         util.Runner
	settings       func() models.Settings
	logger         *logger.CustomLogger
	ProcessLogsDir string
	now            func() time.Time
}

var _ gateway.Backend = (*Emulators)(nil)

func New(runner util.Runner, settings func() models.Settings, log *logger.CustomLogger) *Emulators {
	return &Emulators{
		runner:   runner,
		settings: settings,
		logger:   log,
		now:      time.Now,
	}
}

func HdcToolPath(settings models.Settings) string {
	if settings.HarmonyEmulatorPath != "" {
		return settings.HarmonyEmulatorPath
	}
	return "hdctool"
}

func HdcPath(settings models.Settings) string {
	if settings.HarmonyHdcPath != "" {
		return settings.HarmonyHdcPath
	}
	return "hdc"
}

func (e *Emulators) List(ctx context.Context) ([]models.EmulatorRecord, error) {
	settings := e.settings()
	output, err := e.runner.Output(ctx, HdcToolPath(settings), "list", "targets")
	if err != nil {
		return nil, err
	}

	connected := make(map[string]bool)
	if targets, err := e.runner.Output(ctx, HdcPath(settings), "list", "targets"); err == nil {
		for _, target := range ParseTargets(targets) {
			connected[target] = true
		}
	} else {
		e.logger.LogDebug("harmony_emulator", fmt.Sprintf("Could not get hdc targets, reporting all as stopped - %s", err))
	}

	records := []models.EmulatorRecord{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, "emulator") {
			continue
		}
		status := models.StatusStopped
		if connected[line] {
			status = models.StatusRunning
		}
		records = append(records, models.EmulatorRecord{
			ID:         line,
			Name:       line,
			DeviceType: "HarmonyOS Device",
			OSVersion:  "HarmonyOS NEXT",
			Status:     string(status),
		})
	}
	return records, nil
}

func (e *Emulators) Start(ctx context.Context, id string) error {
	e.logger.LogInfo("harmony_emulator", fmt.Sprintf("Starting emulator `%s`", id))
	return e.runner.Start(ctx, e.processLog(id), HdcToolPath(e.settings()), "start", id)
}

func (e *Emulators) Stop(ctx context.Context, id string) error {
	e.logger.LogInfo("harmony_emulator", fmt.Sprintf("Stopping emulator `%s`", id))
	_, err := e.runner.Output(ctx, HdcToolPath(e.settings()), "stop", id)
	return err
}

// Screenshot captures on the device and pulls the file to the screenshot dir
func (e *Emulators) Screenshot(ctx context.Context, id string) (string, error) {
	settings := e.settings()
	hdc := HdcPath(settings)

	dir := settings.ScreenshotDir
	if dir == "" {
		dir = os.TempDir()
	}
	localPath := filepath.Join(dir, util.ScreenshotFileName(id, e.now()))

	if _, err := e.runner.Output(ctx, hdc, "-t", id, "shell", "snapshot_display", "-f", remoteScreenshotPath); err != nil {
		return "", err
	}
	if _, err := e.runner.Output(ctx, hdc, "-t", id, "file", "recv", remoteScreenshotPath, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}

func (e *Emulators) processLog(id string) io.WriteCloser {
	if e.ProcessLogsDir == "" {
		return nil
	}
	processLogger, err := logger.NewProcessLogger(e.ProcessLogsDir, string(models.PlatformHarmony), id)
	if err != nil {
		e.logger.LogWarn("harmony_emulator", fmt.Sprintf("Could not create process log for `%s` - %s", id, err))
		return nil
	}
	return processLogger
}

// ParseTargets reads `hdc list targets`, which prints [Empty] when nothing is connected
func ParseTargets(output []byte) []string {
	var targets []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "[Empty]" {
			continue
		}
		targets = append(targets, fields[0])
	}
	return targets
}
