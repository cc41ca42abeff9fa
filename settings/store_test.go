package settings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shamanec/GADS-emulator-manager/events"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	stored    models.Settings
	getErr    error
	saveErr   error
	getCalls  int
	saveCalls int
	saved     []models.Settings
}

func (g *fakeGateway) GetSettings(ctx context.Context) (models.Settings, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.getCalls++
	return g.stored, g.getErr
}

func (g *fakeGateway) SaveSettings(ctx context.Context, settings models.Settings) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saveCalls++
	g.saved = append(g.saved, settings)
	return g.saveErr
}

type existingPaths map[string]bool

func (p existingPaths) CheckPathExists(ctx context.Context, path string) (bool, error) {
	return p[path], nil
}

func newStore(gw *fakeGateway, paths existingPaths, opts ...Option) *Store {
	engine := &validation.Engine{Host: validation.HostUnix, Prober: paths, Logger: logger.NewDiscardLogger()}
	return NewStore(gw, engine, logger.NewDiscardLogger(), opts...)
}

func TestRegisteredFieldsOrder(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})

	assert.Equal(t, []Field{
		FieldLanguage, FieldTheme, FieldAndroidHome, FieldDevecoHome, FieldXcodeHome,
		FieldHarmonyEmulatorPath, FieldHarmonyHdcPath, FieldHarmonyImageLocation,
		FieldHarmonyEmulatorLocation, FieldScreenshotDir,
	}, store.RegisteredFields())
}

func TestDefaultsAreValid(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})

	assert.True(t, store.ValidateAll(context.Background()))
	assert.True(t, store.IsValid())
}

func TestValidateAllPopulatesEveryField(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{"/opt/android-sdk": true})
	store.SetAndroidHome("/opt/android-sdk")
	store.SetXcodeHome("/Applications/Other.app/../x")
	store.SetScreenshotDir("relative/shots")
	store.SetTheme("neon")

	assert.False(t, store.ValidateAll(context.Background()))

	outcomes := store.Errors()
	assert.Len(t, outcomes, len(store.RegisteredFields()))
	assert.Equal(t, validation.Reason(""), store.Error(FieldAndroidHome))
	assert.Equal(t, validation.ReasonPathTraversal, store.Error(FieldXcodeHome))
	assert.Equal(t, validation.ReasonInvalidUnixPath, store.Error(FieldScreenshotDir))
	assert.Equal(t, validation.ReasonInvalidOption, store.Error(FieldTheme))
	assert.False(t, store.HasError(FieldLanguage))
	assert.True(t, store.HasError(FieldTheme))
	assert.False(t, store.IsValid())
}

func TestValidateFieldWithoutValidator(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})

	outcome := store.ValidateField(context.Background(), FieldAutoStart)

	assert.Equal(t, validation.Valid(), outcome)
	assert.Contains(t, store.Errors(), FieldAutoStart)
}

func TestValidateFieldPathNotExists(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})
	store.SetDevecoHome("/opt/deveco")

	outcome := store.ValidateField(context.Background(), FieldDevecoHome)

	assert.Equal(t, validation.Invalid(validation.ReasonPathNotExists), outcome)
	assert.Equal(t, validation.ReasonPathNotExists, store.Error(FieldDevecoHome))
}

func TestSaveInvalidDoesNotCallGateway(t *testing.T) {
	gw := &fakeGateway{}
	store := newStore(gw, existingPaths{})
	store.SetAndroidHome("/opt/sdk; rm -rf /")

	saved, err := store.Save(context.Background())

	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 0, gw.saveCalls)
	assert.Equal(t, validation.ReasonPathDangerousChars, store.Error(FieldAndroidHome))
}

func TestSaveValidWritesSnapshotOnce(t *testing.T) {
	gw := &fakeGateway{}
	store := newStore(gw, existingPaths{"/opt/android-sdk": true, "/Applications/Xcode.app": true})
	store.SetLanguage("en-US")
	store.SetAndroidHome("/opt/android-sdk")
	store.SetXcodeHome("/Applications/Xcode.app")
	store.SetAndroidForceKill(true)
	store.SetAutoStart(true)

	saved, err := store.Save(context.Background())

	require.NoError(t, err)
	assert.True(t, saved)
	require.Equal(t, 1, gw.saveCalls)
	assert.Equal(t, store.Snapshot(), gw.saved[0])
	assert.Equal(t, "/opt/android-sdk", gw.saved[0].AndroidHome)
	assert.True(t, gw.saved[0].AndroidForceKill)
}

// editingPaths reports every path as existing and runs onCheck the first
// time path is looked up, standing in for an edit racing a save
type editingPaths struct {
	path    string
	onCheck func()
	once    sync.Once
}

func (p *editingPaths) CheckPathExists(ctx context.Context, path string) (bool, error) {
	if path == p.path {
		p.once.Do(p.onCheck)
	}
	return true, nil
}

func TestSavePersistsTheValidatedSnapshot(t *testing.T) {
	gw := &fakeGateway{}
	paths := &editingPaths{path: "/shots"}
	engine := &validation.Engine{Host: validation.HostUnix, Prober: paths, Logger: logger.NewDiscardLogger()}
	var hooked []models.Settings
	store := NewStore(gw, engine, logger.NewDiscardLogger(), WithPersistHook(func(s models.Settings) {
		hooked = append(hooked, s)
	}))
	store.SetAndroidHome("/opt/android-sdk")
	store.SetScreenshotDir("/shots")
	paths.onCheck = func() { store.SetAndroidHome("relative/not-validated") }

	saved, err := store.Save(context.Background())

	require.NoError(t, err)
	assert.True(t, saved)
	require.Equal(t, 1, gw.saveCalls)
	assert.Equal(t, "/opt/android-sdk", gw.saved[0].AndroidHome)
	assert.Equal(t, "relative/not-validated", store.Snapshot().AndroidHome)
	require.Len(t, hooked, 1)
	assert.Equal(t, gw.saved[0], hooked[0])
}

func TestPersistHook(t *testing.T) {
	stored := models.DefaultSettings()
	stored.HarmonyHdcPath = "/opt/deveco/hdc"
	var hooked []models.Settings
	store := newStore(&fakeGateway{stored: stored}, existingPaths{}, WithPersistHook(func(s models.Settings) {
		hooked = append(hooked, s)
	}))

	store.Load(context.Background())
	store.SetAndroidHome("/opt/sdk; rm -rf /")
	saved, err := store.Save(context.Background())

	require.NoError(t, err)
	assert.False(t, saved)
	require.Len(t, hooked, 1)
	assert.Equal(t, stored, hooked[0])
}

func TestSaveGatewayError(t *testing.T) {
	gw := &fakeGateway{saveErr: errors.New("disk full")}
	store := newStore(gw, existingPaths{})

	saved, err := store.Save(context.Background())

	assert.False(t, saved)
	assert.ErrorIs(t, err, gw.saveErr)
}

func TestLoadReplacesFieldsAndClearsErrors(t *testing.T) {
	stored := models.DefaultSettings()
	stored.Language = "en-US"
	stored.HarmonyHdcPath = "/opt/deveco/hdc"
	gw := &fakeGateway{stored: stored}
	store := newStore(gw, existingPaths{})
	store.SetTheme("neon")
	store.ValidateAll(context.Background())
	require.False(t, store.IsValid())

	store.Load(context.Background())

	assert.Equal(t, stored, store.Snapshot())
	assert.Empty(t, store.Errors())
	assert.True(t, store.IsValid())
}

func TestLoadFailureLeavesState(t *testing.T) {
	gw := &fakeGateway{getErr: errors.New("db down")}
	store := newStore(gw, existingPaths{})
	store.SetTheme("neon")
	store.ValidateField(context.Background(), FieldTheme)

	store.Load(context.Background())

	assert.Equal(t, "neon", store.Snapshot().Theme)
	assert.True(t, store.HasError(FieldTheme))
	assert.Equal(t, 1, gw.getCalls)
}

func TestClearErrors(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})
	store.SetLanguage("fr-FR")
	store.ValidateAll(context.Background())

	store.ClearErrors()

	assert.Empty(t, store.Errors())
	assert.True(t, store.IsValid())
	assert.Equal(t, "fr-FR", store.Snapshot().Language)
}

func TestSet(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})

	require.NoError(t, store.Set(FieldScreenshotDir, "/tmp/shots"))
	require.NoError(t, store.Set(FieldMinimizeToTray, false))
	assert.ErrorIs(t, store.Set(FieldAutoStart, "yes"), ErrInvalidValue)
	assert.ErrorIs(t, store.Set(Field("fontSize"), 12), ErrUnknownField)

	snapshot := store.Snapshot()
	assert.Equal(t, "/tmp/shots", snapshot.ScreenshotDir)
	assert.False(t, snapshot.MinimizeToTray)
}

func TestSetManyIsAllOrNothing(t *testing.T) {
	store := newStore(&fakeGateway{}, existingPaths{})
	before := store.Snapshot()

	err := store.SetMany(map[Field]interface{}{
		FieldAndroidHome:   "/changed",
		FieldScreenshotDir: "/changed2",
		FieldXcodeHome:     "/x",
		FieldAutoStart:     "yes",
	})

	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, before, store.Snapshot())

	require.NoError(t, store.SetMany(map[Field]interface{}{
		FieldAndroidHome: "/changed",
		FieldAutoStart:   false,
	}))
	assert.Equal(t, "/changed", store.Snapshot().AndroidHome)
	assert.False(t, store.Snapshot().AutoStart)
}

func TestParseField(t *testing.T) {
	field, err := ParseField("harmonyEmulatorLocation")
	require.NoError(t, err)
	assert.Equal(t, FieldHarmonyEmulatorLocation, field)

	_, err = ParseField("harmony_emulator_location")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEvents(t *testing.T) {
	broadcaster := events.NewBroadcaster()
	ch, unsubscribe := broadcaster.Subscribe()
	defer unsubscribe()
	store := newStore(&fakeGateway{stored: models.DefaultSettings()}, existingPaths{}, WithBroadcaster(broadcaster))

	store.Load(context.Background())
	_, err := store.Save(context.Background())
	require.NoError(t, err)

	var kinds []string
	for i := 0; i < 3; i++ {
		event := <-ch
		assert.Equal(t, "settings", event.Source)
		kinds = append(kinds, event.Kind)
	}
	assert.Equal(t, []string{"loaded", "validated", "saved"}, kinds)
}
