package models

import (
	"fmt"
	"strings"
	"time"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformHarmony Platform = "harmony"
)

// Platforms lists every supported platform in display order
var Platforms = []Platform{PlatformIOS, PlatformAndroid, PlatformHarmony}

// ParsePlatform converts a user supplied platform name, e.g. from a route param
func ParsePlatform(value string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(value))) {
	case PlatformIOS:
		return PlatformIOS, nil
	case PlatformAndroid:
		return PlatformAndroid, nil
	case PlatformHarmony:
		return PlatformHarmony, nil
	}
	return "", fmt.Errorf("unknown platform `%s`", value)
}

type DeviceStatus string

const (
	StatusRunning DeviceStatus = "running"
	StatusStopped DeviceStatus = "stopped"
)

// VirtualDevice is a simulator/emulator as kept by the device registry.
// ID is only unique within Platform.
type VirtualDevice struct {
	ID            string       `json:"id"`
	Platform      Platform     `json:"platform"`
	Name          string       `json:"name"`
	DeviceProfile string       `json:"deviceProfile"`
	OSVersion     string       `json:"osVersion"`
	Status        DeviceStatus `json:"status"`
	LastUsedAt    *time.Time   `json:"lastUsedAt,omitempty"`
}

// EmulatorRecord is the wire shape returned by the platform drivers.
// It does not carry the platform.
type EmulatorRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
	OSVersion  string `json:"os_version"`
	Status     string `json:"status"`
}

// ToVirtualDevice stamps the record with the platform it was listed for
func (r EmulatorRecord) ToVirtualDevice(platform Platform) VirtualDevice {
	status := StatusStopped
	if DeviceStatus(r.Status) == StatusRunning {
		status = StatusRunning
	}

	return VirtualDevice{
		ID:            r.ID,
		Platform:      platform,
		Name:          r.Name,
		DeviceProfile: r.DeviceType,
		OSVersion:     r.OSVersion,
		Status:        status,
	}
}
