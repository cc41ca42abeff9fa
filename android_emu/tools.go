package android_emu

import (
	"path/filepath"
	"runtime"

	"github.com/shamanec/GADS-emulator-manager/models"
)

func exeSuffix(goos, suffix string) string {
	if goos == "windows" {
		return suffix
	}
	return ""
}

// EmulatorPath resolves the emulator binary from the SDK root, falls back to PATH
func EmulatorPath(settings models.Settings) string {
	if settings.AndroidHome == "" {
		return "emulator"
	}
	return filepath.Join(settings.AndroidHome, "emulator", "emulator"+exeSuffix(runtime.GOOS, ".exe"))
}

func ADBPath(settings models.Settings) string {
	if settings.AndroidHome == "" {
		return "adb"
	}
	return filepath.Join(settings.AndroidHome, "platform-tools", "adb"+exeSuffix(runtime.GOOS, ".exe"))
}

func AVDManagerPath(settings models.Settings) string {
	if settings.AndroidHome == "" {
		return "avdmanager"
	}
	return filepath.Join(settings.AndroidHome, "cmdline-tools", "latest", "bin", "avdmanager"+exeSuffix(runtime.GOOS, ".bat"))
}
