// Package ios_sim drives iOS simulators through `xcrun simctl`
package ios_sim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/util"
)

const deviceTypePrefix = "com.apple.CoreSimulator.SimDeviceType."

// Simulators is the iOS gateway.Backend, available only on macOS hosts
type Simulators struct {
	runner   util.Runner
	settings func() models.Settings
	logger   *logger.CustomLogger
	goos     string
	now      func() time.Time
}

var (
	_ gateway.Backend = (*Simulators)(nil)
	_ gateway.Eraser  = (*Simulators)(nil)
)

func New(runner util.Runner, settings func() models.Settings, log *logger.CustomLogger) *Simulators {
	return &Simulators{
		runner:   runner,
		settings: settings,
		logger:   log,
		goos:     runtime.GOOS,
		now:      time.Now,
	}
}

// XcrunPath prefers the xcrun of the configured Xcode bundle
func XcrunPath(settings models.Settings) string {
	if settings.XcodeHome == "" {
		return "xcrun"
	}
	return filepath.Join(settings.XcodeHome, "Contents", "Developer", "usr", "bin", "xcrun")
}

func (s *Simulators) xcrun(ctx context.Context, args ...string) ([]byte, error) {
	if s.goos != "darwin" {
		return nil, fmt.Errorf("iOS simulators are only available on macOS: %w", gateway.ErrHostUnsupported)
	}
	return s.runner.Output(ctx, XcrunPath(s.settings()), args...)
}

func (s *Simulators) simulatorsData(ctx context.Context) (models.SimctlDevices, error) {
	output, err := s.xcrun(ctx, "simctl", "list", "devices", "-j")
	if err != nil {
		return models.SimctlDevices{}, err
	}

	var simData models.SimctlDevices
	if err := json.Unmarshal(output, &simData); err != nil {
		return models.SimctlDevices{}, fmt.Errorf("could not parse simctl devices - %w", err)
	}
	return simData, nil
}

func (s *Simulators) List(ctx context.Context) ([]models.EmulatorRecord, error) {
	simData, err := s.simulatorsData(ctx)
	if err != nil {
		return nil, err
	}

	runtimes := make([]string, 0, len(simData.SimctlDevice))
	for runtimeID := range simData.SimctlDevice {
		runtimes = append(runtimes, runtimeID)
	}
	sort.Strings(runtimes)

	records := []models.EmulatorRecord{}
	for _, runtimeID := range runtimes {
		for _, sim := range simData.SimctlDevice[runtimeID] {
			if sim.UDID == "" || sim.Name == "" || sim.State == "" {
				continue
			}
			records = append(records, models.EmulatorRecord{
				ID:         sim.UDID,
				Name:       sim.Name,
				DeviceType: deviceTypeName(sim),
				OSVersion:  models.RuntimeVersion(runtimeID),
				Status:     simStatus(sim.State),
			})
		}
	}
	return records, nil
}

func (s *Simulators) bootedUDIDs(ctx context.Context) (map[string]bool, error) {
	simData, err := s.simulatorsData(ctx)
	if err != nil {
		return nil, err
	}

	booted := make(map[string]bool)
	for _, sims := range simData.SimctlDevice {
		for _, sim := range sims {
			if sim.State == "Booted" {
				booted[sim.UDID] = true
			}
		}
	}
	return booted, nil
}

// Start boots the simulator unless already booted and brings up Simulator.app
func (s *Simulators) Start(ctx context.Context, udid string) error {
	booted, err := s.bootedUDIDs(ctx)
	if err != nil {
		return err
	}

	if booted[udid] {
		s.logger.LogInfo("ios_sim", fmt.Sprintf("Simulator `%s` is already booted", udid))
	} else {
		s.logger.LogInfo("ios_sim", fmt.Sprintf("Booting simulator `%s`", udid))
		if _, err := s.xcrun(ctx, "simctl", "boot", udid); err != nil {
			return err
		}
	}

	return s.runner.Start(ctx, nil, "open", "-a", "Simulator", "--args", "-CurrentDeviceUDID", udid)
}

func (s *Simulators) Stop(ctx context.Context, udid string) error {
	booted, err := s.bootedUDIDs(ctx)
	if err != nil {
		return err
	}

	if !booted[udid] {
		s.logger.LogInfo("ios_sim", fmt.Sprintf("Simulator `%s` is not booted", udid))
		return nil
	}

	s.logger.LogInfo("ios_sim", fmt.Sprintf("Shutting down simulator `%s`", udid))
	_, err = s.xcrun(ctx, "simctl", "shutdown", udid)
	return err
}

func (s *Simulators) Delete(ctx context.Context, udid string) error {
	s.logger.LogInfo("ios_sim", fmt.Sprintf("Deleting simulator `%s`", udid))
	_, err := s.xcrun(ctx, "simctl", "delete", udid)
	return err
}

// Wipe erases all content and settings of the simulator
func (s *Simulators) Wipe(ctx context.Context, udid string) error {
	s.logger.LogInfo("ios_sim", fmt.Sprintf("Erasing simulator `%s`", udid))
	_, err := s.xcrun(ctx, "simctl", "erase", udid)
	return err
}

func (s *Simulators) Screenshot(ctx context.Context, udid string) (string, error) {
	path := filepath.Join(screenshotDir(s.settings()), util.ScreenshotFileName(udid, s.now()))

	if _, err := s.xcrun(ctx, "simctl", "io", udid, "screenshot", path); err != nil {
		return "", err
	}
	return path, nil
}

func screenshotDir(settings models.Settings) string {
	if settings.ScreenshotDir != "" {
		return settings.ScreenshotDir
	}
	return os.TempDir()
}

func simStatus(state string) string {
	if state == "Booted" {
		return string(models.StatusRunning)
	}
	return string(models.StatusStopped)
}

// iPhone-15-Pro -> iPhone 15 Pro, falls back to the simulator name
func deviceTypeName(sim models.SimctlDevice) string {
	if !strings.HasPrefix(sim.DeviceTypeIdentifier, deviceTypePrefix) {
		return sim.Name
	}
	return strings.ReplaceAll(strings.TrimPrefix(sim.DeviceTypeIdentifier, deviceTypePrefix), "-", " ")
}
