package android_emu

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// API level to Android release
var sdkToVersion = map[string]string{
	"23": "6",
	"24": "7",
	"25": "7.1",
	"26": "8",
	"27": "8.1",
	"28": "9",
	"29": "10",
	"30": "11",
	"31": "12",
	"32": "12L",
	"33": "13",
	"34": "14",
	"35": "15",
}

var sysdirAPIRegex = regexp.MustCompile(`android-(\d+)`)

type avdInfo struct {
	DeviceType string
	OSVersion  string
}

// DefaultAVDHome follows the emulator lookup: ANDROID_AVD_HOME, then ~/.android/avd
func DefaultAVDHome() string {
	if avdHome := os.Getenv("ANDROID_AVD_HOME"); avdHome != "" {
		return avdHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".android", "avd")
}

// readAVDInfo reads <avdHome>/<name>.avd/config.ini, missing data keeps the defaults
func readAVDInfo(avdHome, name string) avdInfo {
	info := avdInfo{DeviceType: "Android Device", OSVersion: "Unknown"}
	if avdHome == "" {
		return info
	}

	file, err := os.Open(filepath.Join(avdHome, name+".avd", "config.ini"))
	if err != nil {
		return info
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "hw.device.name":
			if value != "" {
				info.DeviceType = value
			}
		case "image.sysdir.1":
			match := sysdirAPIRegex.FindStringSubmatch(value)
			if match == nil {
				continue
			}
			if version, ok := sdkToVersion[match[1]]; ok {
				info.OSVersion = "Android " + version
			} else {
				info.OSVersion = "API " + match[1]
			}
		}
	}
	return info
}
