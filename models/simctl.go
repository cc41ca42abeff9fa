package models

import "strings"

const simRuntimePrefix = "com.apple.CoreSimulator.SimRuntime."

// SimctlDevice matches a single entry of `xcrun simctl list devices -j`
type SimctlDevice struct {
	AvailabilityError    string `json:"availabilityError"`
	DataPath             string `json:"dataPath"`
	LogPath              string `json:"logPath"`
	UDID                 string `json:"udid"`
	IsAvailable          bool   `json:"isAvailable"`
	DeviceTypeIdentifier string `json:"deviceTypeIdentifier"`
	State                string `json:"state"`
	Name                 string `json:"name"`
	LastBootedAt         string `json:"lastBootedAt,omitempty"`
}

// SimctlDevices is keyed by runtime identifier
type SimctlDevices struct {
	SimctlDevice map[string][]SimctlDevice `json:"devices"`
}

// RuntimeVersion strips the CoreSimulator prefix, e.g. `iOS-17-0`
func RuntimeVersion(runtime string) string {
	return strings.TrimPrefix(runtime, simRuntimePrefix)
}
