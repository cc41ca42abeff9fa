// Package settings holds the user configuration being edited, the
// validation outcome of each field and the save/load round trip to the
// settings gateway.
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/shamanec/GADS-emulator-manager/events"
	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/validation"
)

const eventSource = "settings"

type registeredValidator struct {
	field     Field
	validator validation.Validator
}

type Store struct {
	mu               sync.Mutex
	settings         models.Settings
	validationErrors map[Field]validation.Outcome

	validators []registeredValidator
	gateway    gateway.SettingsGateway
	events     *events.Broadcaster
	logger     *logger.CustomLogger
	onPersist  func(models.Settings)
	// held across Load and Save so onPersist sees them in gateway order
	persistMu sync.Mutex
}

type Option func(*Store)

func WithBroadcaster(b *events.Broadcaster) Option {
	return func(s *Store) { s.events = b }
}

// WithPersistHook calls hook with the exact settings a successful Load read
// or a successful Save wrote, before Load or Save returns
func WithPersistHook(hook func(models.Settings)) Option {
	return func(s *Store) { s.onPersist = hook }
}

// NewStore starts from the default settings with validators registered for
// every path field plus the language and theme options
func NewStore(gw gateway.SettingsGateway, engine *validation.Engine, log *logger.CustomLogger, opts ...Option) *Store {
	store := &Store{
		settings:         models.DefaultSettings(),
		validationErrors: make(map[Field]validation.Outcome),
		gateway:          gw,
		logger:           log,
	}
	for _, opt := range opts {
		opt(store)
	}

	store.Register(FieldLanguage, validation.OptionValidator(models.Settings{}, "Language"))
	store.Register(FieldTheme, validation.OptionValidator(models.Settings{}, "Theme"))
	store.Register(FieldAndroidHome, engine.ValidateAndroidSdkPath)
	store.Register(FieldDevecoHome, engine.ValidateDevecoPath)
	store.Register(FieldXcodeHome, engine.ValidateXcodePath)
	store.Register(FieldHarmonyEmulatorPath, engine.ValidateExecutablePath)
	store.Register(FieldHarmonyHdcPath, engine.ValidateExecutablePath)
	store.Register(FieldHarmonyImageLocation, engine.ValidateDirectory)
	store.Register(FieldHarmonyEmulatorLocation, engine.ValidateDirectory)
	store.Register(FieldScreenshotDir, engine.ValidateScreenshotDir)
	return store
}

// Register adds or replaces the validator of field, registration order is validation order
func (s *Store) Register(field Field, validator validation.Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, registered := range s.validators {
		if registered.field == field {
			s.validators[i].validator = validator
			return
		}
	}
	s.validators = append(s.validators, registeredValidator{field: field, validator: validator})
}

func (s *Store) RegisteredFields() []Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields := make([]Field, 0, len(s.validators))
	for _, registered := range s.validators {
		fields = append(fields, registered.field)
	}
	return fields
}

func (s *Store) Snapshot() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Load replaces every field with the persisted settings and clears the errors.
// A failing gateway leaves the store as it was, the failure is only logged.
func (s *Store) Load(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	loaded, err := s.gateway.GetSettings(ctx)
	if err != nil {
		s.logger.LogError("settings_load", fmt.Sprintf("Failed to load settings - %s", err))
		return
	}

	s.mu.Lock()
	s.settings = loaded
	s.validationErrors = make(map[Field]validation.Outcome)
	s.mu.Unlock()

	s.persisted(loaded)
	s.logger.LogDebug("settings_load", "Loaded settings")
	s.publish("loaded", "")
}

// ValidateField runs the validator registered for field against its current
// value and records the outcome. Fields without a validator are valid.
func (s *Store) ValidateField(ctx context.Context, field Field) validation.Outcome {
	s.mu.Lock()
	validator := s.validatorFor(field)
	value := stringValue(&s.settings, field)
	s.mu.Unlock()

	outcome := s.check(ctx, field, validator, value)
	s.mu.Lock()
	s.validationErrors[field] = outcome
	s.mu.Unlock()
	return outcome
}

// ValidateAll validates the registered fields one after another against a
// single snapshot, the outcomes of every field are recorded before it returns
func (s *Store) ValidateAll(ctx context.Context) bool {
	allValid := s.validateSnapshot(ctx, s.Snapshot())
	s.publish("validated", fmt.Sprintf("%t", allValid))
	return allValid
}

// Save validates one snapshot and persists that same snapshot only when every
// field is valid. Edits made while it runs are neither validated nor saved.
func (s *Store) Save(ctx context.Context) (bool, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	snapshot := s.Snapshot()
	allValid := s.validateSnapshot(ctx, snapshot)
	s.publish("validated", fmt.Sprintf("%t", allValid))
	if !allValid {
		s.logger.LogInfo("settings_save", "Not saving settings, validation failed")
		return false, nil
	}

	if err := s.gateway.SaveSettings(ctx, snapshot); err != nil {
		s.logger.LogError("settings_save", fmt.Sprintf("Failed to save settings - %s", err))
		return false, fmt.Errorf("could not save settings: %w", err)
	}

	s.persisted(snapshot)
	s.logger.LogInfo("settings_save", "Saved settings")
	s.publish("saved", "")
	return true, nil
}

func (s *Store) validateSnapshot(ctx context.Context, snapshot models.Settings) bool {
	s.mu.Lock()
	validators := make([]registeredValidator, len(s.validators))
	copy(validators, s.validators)
	s.mu.Unlock()

	outcomes := make(map[Field]validation.Outcome, len(validators))
	allValid := true
	for _, registered := range validators {
		outcome := s.check(ctx, registered.field, registered.validator, stringValue(&snapshot, registered.field))
		outcomes[registered.field] = outcome
		if !outcome.Valid {
			allValid = false
		}
	}

	s.mu.Lock()
	for field, outcome := range outcomes {
		s.validationErrors[field] = outcome
	}
	s.mu.Unlock()
	return allValid
}

func (s *Store) check(ctx context.Context, field Field, validator validation.Validator, value string) validation.Outcome {
	if validator == nil {
		return validation.Valid()
	}
	outcome := validator(ctx, value)
	if !outcome.Valid {
		s.logger.LogDebug("settings_validation", fmt.Sprintf("Field `%s` is invalid - %s", field, outcome.Reason))
	}
	return outcome
}

func (s *Store) persisted(settings models.Settings) {
	if s.onPersist != nil {
		s.onPersist(settings)
	}
}

// Error returns the reason field is invalid, empty when it is not
func (s *Store) Error(field Field) validation.Reason {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, ok := s.validationErrors[field]
	if !ok || outcome.Valid {
		return ""
	}
	return outcome.Reason
}

func (s *Store) HasError(field Field) bool {
	return s.Error(field) != ""
}

func (s *Store) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, outcome := range s.validationErrors {
		if !outcome.Valid {
			return false
		}
	}
	return true
}

// Errors returns a copy of the recorded outcomes
func (s *Store) Errors() map[Field]validation.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcomes := make(map[Field]validation.Outcome, len(s.validationErrors))
	for field, outcome := range s.validationErrors {
		outcomes[field] = outcome
	}
	return outcomes
}

func (s *Store) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validationErrors = make(map[Field]validation.Outcome)
}

// Set assigns a field by its API name, string fields take a string and switches a bool
func (s *Store) Set(field Field, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return assign(&s.settings, field, value)
}

// SetMany assigns every value or none of them, a bad name or type leaves the
// settings untouched
func (s *Store) SetMany(values map[Field]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := s.settings
	for field, value := range values {
		if err := assign(&updated, field, value); err != nil {
			return err
		}
	}
	s.settings = updated
	return nil
}

func (s *Store) update(apply func(*models.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.settings)
}

func (s *Store) SetLanguage(v string) { s.update(func(m *models.Settings) { m.Language = v }) }
func (s *Store) SetTheme(v string)    { s.update(func(m *models.Settings) { m.Theme = v }) }
func (s *Store) SetAutoStart(v bool)  { s.update(func(m *models.Settings) { m.AutoStart = v }) }
func (s *Store) SetMinimizeToTray(v bool) {
	s.update(func(m *models.Settings) { m.MinimizeToTray = v })
}
func (s *Store) SetCloseToMinimize(v bool) {
	s.update(func(m *models.Settings) { m.CloseToMinimize = v })
}
func (s *Store) SetAndroidForceKill(v bool) {
	s.update(func(m *models.Settings) { m.AndroidForceKill = v })
}
func (s *Store) SetAndroidHome(v string) { s.update(func(m *models.Settings) { m.AndroidHome = v }) }
func (s *Store) SetDevecoHome(v string)  { s.update(func(m *models.Settings) { m.DevecoHome = v }) }
func (s *Store) SetXcodeHome(v string)   { s.update(func(m *models.Settings) { m.XcodeHome = v }) }
func (s *Store) SetHarmonyEmulatorPath(v string) {
	s.update(func(m *models.Settings) { m.HarmonyEmulatorPath = v })
}
func (s *Store) SetHarmonyHdcPath(v string) {
	s.update(func(m *models.Settings) { m.HarmonyHdcPath = v })
}
func (s *Store) SetHarmonyImageLocation(v string) {
	s.update(func(m *models.Settings) { m.HarmonyImageLocation = v })
}
func (s *Store) SetHarmonyEmulatorLocation(v string) {
	s.update(func(m *models.Settings) { m.HarmonyEmulatorLocation = v })
}
func (s *Store) SetScreenshotDir(v string) {
	s.update(func(m *models.Settings) { m.ScreenshotDir = v })
}

func (s *Store) validatorFor(field Field) validation.Validator {
	for _, registered := range s.validators {
		if registered.field == field {
			return registered.validator
		}
	}
	return nil
}

func (s *Store) publish(kind, detail string) {
	if s.events != nil {
		s.events.Publish(eventSource, kind, detail)
	}
}
