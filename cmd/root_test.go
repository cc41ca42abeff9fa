package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	appVersion = "1.2.3"

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "gads-emulators 1.2.3\n", out)
}

func TestValidateDefaults(t *testing.T) {
	folder := t.TempDir()

	out, err := execute(t, "validate", "--folder", folder)

	require.NoError(t, err)
	assert.Contains(t, out, "androidHome")
	assert.Contains(t, out, "ok")
	assert.FileExists(t, filepath.Join(folder, "logs", "provider.log"))
}

func TestValidateInvalidSettings(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "conf"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "conf", "settings.json"), []byte(`{"theme":"neon","android_home":"/does/not/exist"}`), 0644))

	out, err := execute(t, "validate", "--folder", folder)

	assert.Error(t, err)
	assert.Contains(t, out, "invalidOption")
	assert.Contains(t, out, "pathNotExists")
}

func TestListUnknownPlatform(t *testing.T) {
	_, err := execute(t, "list", "symbian", "--folder", t.TempDir())

	assert.Error(t, err)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provider.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = \"10500\"\nlog_level = \"debug\"\n"), 0644))
	configPath = path
	overrides.Port = "10600"
	overrides.ProviderFolder = dir
	defer func() {
		configPath = ""
		overrides.Port = ""
		overrides.ProviderFolder = ""
	}()

	cfg, err := loadConfig()

	require.NoError(t, err)
	assert.Equal(t, "10600", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, dir, cfg.ProviderFolder)
}

func TestPrintDevices(t *testing.T) {
	out := new(bytes.Buffer)

	require.NoError(t, printDevices(out, []models.VirtualDevice{
		{ID: "Pixel_7", Name: "Pixel_7", DeviceProfile: "pixel 7", OSVersion: "Android 14", Status: models.StatusRunning},
	}))

	assert.Contains(t, out.String(), "Pixel_7")
	assert.Contains(t, out.String(), "running")
}
