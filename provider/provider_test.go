package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/GADS-emulator-manager/config"
	"github.com/shamanec/GADS-emulator-manager/db"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, runner *testutil.FakeRunner) *Provider {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.ProviderFolder = t.TempDir()
	storage, fileStore, err := OpenStorage(cfg)
	require.NoError(t, err)
	return New(cfg, storage, fileStore, logger.NewDiscardLogger(), runner)
}

func TestOpenStorageDefaultsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.ProviderFolder = t.TempDir()

	storage, fileStore, err := OpenStorage(cfg)

	require.NoError(t, err)
	assert.Same(t, fileStore, storage.(*db.FileStore))
	assert.Equal(t, filepath.Join(cfg.ProviderFolder, "conf", "settings.json"), fileStore.SettingsPath())
}

func TestPersistedSettingsFollowSaves(t *testing.T) {
	p := newTestProvider(t, testutil.NewFakeRunner())
	ctx := context.Background()
	p.LoadSettings(ctx)

	p.Settings.SetHarmonyHdcPath("/opt/deveco/hdc")
	p.Settings.SetLanguage("en-US")
	assert.Equal(t, "zh-CN", p.PersistedSettings().Language)

	p.Settings.SetHarmonyHdcPath("")
	saved, err := p.Settings.Save(ctx)
	require.NoError(t, err)
	require.True(t, saved)
	assert.Equal(t, "en-US", p.PersistedSettings().Language)
	assert.Equal(t, "", p.PersistedSettings().HarmonyHdcPath)

	p.Settings.SetHarmonyHdcPath("relative/hdc")
	assert.Equal(t, "", p.PersistedSettings().HarmonyHdcPath)
	assert.Equal(t, "relative/hdc", p.Settings.Snapshot().HarmonyHdcPath)
}

func TestPersistedSettingsFollowLoads(t *testing.T) {
	p := newTestProvider(t, testutil.NewFakeRunner())
	ctx := context.Background()
	stored := models.DefaultSettings()
	stored.Language = "en-US"
	require.NoError(t, p.storage.SaveSettings(ctx, stored))

	p.Settings.SetLanguage("zh-CN")
	p.LoadSettings(ctx)

	assert.Equal(t, stored, p.PersistedSettings())
}

func TestHandlerRefreshesHarmony(t *testing.T) {
	runner := testutil.NewFakeRunner().
		On("hdctool list targets", "emulator-mate60\n", nil).
		On("hdc list targets", "[Empty]\n", nil)
	p := newTestProvider(t, runner)

	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/emulators/refresh/harmony", nil))

	require.Equal(t, http.StatusOK, w.Code)
	devices := p.Registry.Devices()
	require.Len(t, devices, 1)
	assert.Equal(t, models.PlatformHarmony, devices[0].Platform)
	assert.Equal(t, "HarmonyOS NEXT", devices[0].OSVersion)
}

func TestStartRecordsUsage(t *testing.T) {
	runner := testutil.NewFakeRunner().
		On("hdctool list targets", "emulator-mate60\n", nil).
		On("hdc list targets", "[Empty]\n", nil)
	p := newTestProvider(t, runner)
	ctx := context.Background()
	require.NoError(t, p.Registry.Refresh(ctx, models.PlatformHarmony))

	require.NoError(t, p.Registry.Start(ctx, "emulator-mate60"))
	require.NoError(t, p.Registry.Refresh(ctx, models.PlatformHarmony))

	devices := p.Registry.Devices()
	require.Len(t, devices, 1)
	assert.NotNil(t, devices[0].LastUsedAt)
	assert.True(t, runner.Ran("hdctool start emulator-mate60"))
}

func TestResolveFolder(t *testing.T) {
	folder, err := ResolveFolder("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(folder))

	folder, err = ResolveFolder("relative")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(folder))
}
