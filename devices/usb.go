package devices

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/danielpaulus/go-ios/ios"
	"github.com/shamanec/GADS-emulator-manager/android_emu"
	"github.com/shamanec/GADS-emulator-manager/harmony_emu"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/util"
)

// USBScanner lists the physical devices attached to the host.
// A platform whose tooling is missing is skipped, never failing the scan.
type USBScanner struct {
	runner   util.Runner
	settings func() models.Settings
	logger   *logger.CustomLogger
	listIOS  func() ([]models.USBDevice, error)
}

func NewUSBScanner(runner util.Runner, settings func() models.Settings, log *logger.CustomLogger) *USBScanner {
	return &USBScanner{
		runner:   runner,
		settings: settings,
		logger:   log,
		listIOS:  listIOSDevices,
	}
}

func (s *USBScanner) List(ctx context.Context) []models.USBDevice {
	connectedDevices := []models.USBDevice{}

	iosDevices, err := s.listIOS()
	if err != nil {
		s.logger.LogWarn("usb_devices", fmt.Sprintf("Could not get connected iOS devices with `go-ios` library, skipping - %s", err))
	}
	connectedDevices = append(connectedDevices, iosDevices...)

	androidDevices, err := s.listAndroid(ctx)
	if err != nil {
		s.logger.LogDebug("usb_devices", fmt.Sprintf("Could not get connected Android devices with `adb`, skipping - %s", err))
	}
	connectedDevices = append(connectedDevices, androidDevices...)

	harmonyDevices, err := s.listHarmony(ctx)
	if err != nil {
		s.logger.LogDebug("usb_devices", fmt.Sprintf("Could not get connected HarmonyOS devices with `hdc`, skipping - %s", err))
	}
	connectedDevices = append(connectedDevices, harmonyDevices...)

	return connectedDevices
}

func listIOSDevices() ([]models.USBDevice, error) {
	deviceList, err := ios.ListDevices()
	if err != nil {
		return nil, err
	}

	var connectedDevices []models.USBDevice
	seen := make(map[string]bool)
	for _, connDevice := range deviceList.DeviceList {
		serial := connDevice.Properties.SerialNumber
		if seen[serial] {
			continue
		}
		seen[serial] = true

		name := serial
		trusted := false
		if values, err := ios.GetValues(connDevice); err == nil {
			trusted = true
			if values.Value.DeviceName != "" {
				name = values.Value.DeviceName
			}
		}
		connectedDevices = append(connectedDevices, models.USBDevice{
			Platform:  models.PlatformIOS,
			Name:      name,
			Serial:    serial,
			Brand:     "Apple",
			VendorID:  "05ac",
			ProductID: fmt.Sprintf("%04x", connDevice.Properties.ProductID),
			Trusted:   &trusted,
		})
	}
	return connectedDevices, nil
}

func (s *USBScanner) listAndroid(ctx context.Context) ([]models.USBDevice, error) {
	adb := android_emu.ADBPath(s.settings())
	output, err := s.runner.Output(ctx, adb, "devices", "-l")
	if err != nil {
		return nil, err
	}

	var connectedDevices []models.USBDevice
	for _, line := range parseADBDevicesLong(output) {
		if strings.HasPrefix(line.serial, "emulator-") {
			continue
		}

		debugging := line.state == "device"
		device := models.USBDevice{
			Platform:     models.PlatformAndroid,
			Name:         strings.ReplaceAll(line.props["model"], "_", " "),
			Serial:       line.serial,
			USBDebugging: &debugging,
		}
		if device.Name == "" {
			device.Name = line.serial
		}
		if debugging {
			if brand, err := s.runner.Output(ctx, adb, "-s", line.serial, "shell", "getprop", "ro.product.brand"); err == nil {
				device.Brand = strings.TrimSpace(string(brand))
			}
		}
		connectedDevices = append(connectedDevices, device)
	}
	return connectedDevices, nil
}

func (s *USBScanner) listHarmony(ctx context.Context) ([]models.USBDevice, error) {
	output, err := s.runner.Output(ctx, harmony_emu.HdcPath(s.settings()), "list", "targets")
	if err != nil {
		return nil, err
	}

	var connectedDevices []models.USBDevice
	for _, target := range harmony_emu.ParseTargets(output) {
		// network targets are emulators or tcp connected devices
		if strings.Contains(target, ":") || strings.Contains(target, "emulator") {
			continue
		}
		connectedDevices = append(connectedDevices, models.USBDevice{
			Platform: models.PlatformHarmony,
			Name:     target,
			Serial:   target,
			Brand:    "Huawei",
		})
	}
	return connectedDevices, nil
}

type adbDeviceLine struct {
	serial string
	state  string
	props  map[string]string
}

// parseADBDevicesLong reads `adb devices -l`, e.g.
// R58M123ABC  device usb:1-1 product:a51 model:SM_A515F device:a51 transport_id:1
func parseADBDevicesLong(output []byte) []adbDeviceLine {
	var lines []adbDeviceLine
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		parsed := adbDeviceLine{serial: fields[0], state: fields[1], props: make(map[string]string)}
		for _, field := range fields[2:] {
			if key, value, ok := strings.Cut(field, ":"); ok {
				parsed.props[key] = value
			}
		}
		lines = append(lines, parsed)
	}
	return lines
}
