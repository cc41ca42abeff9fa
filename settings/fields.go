package settings

import (
	"errors"
	"fmt"

	"github.com/shamanec/GADS-emulator-manager/models"
)

var (
	ErrUnknownField = errors.New("unknown settings field")
	ErrInvalidValue = errors.New("invalid value type for settings field")
)

// Field is the camelCase name of a settings field as used by the API
type Field string

const (
	FieldLanguage                Field = "language"
	FieldTheme                   Field = "theme"
	FieldAutoStart               Field = "autoStart"
	FieldMinimizeToTray          Field = "minimizeToTray"
	FieldCloseToMinimize         Field = "closeToMinimize"
	FieldAndroidForceKill        Field = "androidForceKill"
	FieldAndroidHome             Field = "androidHome"
	FieldDevecoHome              Field = "devecoHome"
	FieldXcodeHome               Field = "xcodeHome"
	FieldHarmonyEmulatorPath     Field = "harmonyEmulatorPath"
	FieldHarmonyHdcPath          Field = "harmonyHdcPath"
	FieldHarmonyImageLocation    Field = "harmonyImageLocation"
	FieldHarmonyEmulatorLocation Field = "harmonyEmulatorLocation"
	FieldScreenshotDir           Field = "screenshotDir"
)

type stringField func(*models.Settings) *string
type boolField func(*models.Settings) *bool

var stringFields = map[Field]stringField{
	FieldLanguage:                func(s *models.Settings) *string { return &s.Language },
	FieldTheme:                   func(s *models.Settings) *string { return &s.Theme },
	FieldAndroidHome:             func(s *models.Settings) *string { return &s.AndroidHome },
	FieldDevecoHome:              func(s *models.Settings) *string { return &s.DevecoHome },
	FieldXcodeHome:               func(s *models.Settings) *string { return &s.XcodeHome },
	FieldHarmonyEmulatorPath:     func(s *models.Settings) *string { return &s.HarmonyEmulatorPath },
	FieldHarmonyHdcPath:          func(s *models.Settings) *string { return &s.HarmonyHdcPath },
	FieldHarmonyImageLocation:    func(s *models.Settings) *string { return &s.HarmonyImageLocation },
	FieldHarmonyEmulatorLocation: func(s *models.Settings) *string { return &s.HarmonyEmulatorLocation },
	FieldScreenshotDir:           func(s *models.Settings) *string { return &s.ScreenshotDir },
}

var boolFields = map[Field]boolField{
	FieldAutoStart:        func(s *models.Settings) *bool { return &s.AutoStart },
	FieldMinimizeToTray:   func(s *models.Settings) *bool { return &s.MinimizeToTray },
	FieldCloseToMinimize:  func(s *models.Settings) *bool { return &s.CloseToMinimize },
	FieldAndroidForceKill: func(s *models.Settings) *bool { return &s.AndroidForceKill },
}

func ParseField(name string) (Field, error) {
	field := Field(name)
	if _, ok := stringFields[field]; ok {
		return field, nil
	}
	if _, ok := boolFields[field]; ok {
		return field, nil
	}
	return "", fmt.Errorf("%w `%s`", ErrUnknownField, name)
}

// stringValue returns the value validators run against, bool fields have none
func stringValue(settings *models.Settings, field Field) string {
	if accessor, ok := stringFields[field]; ok {
		return *accessor(settings)
	}
	return ""
}

func assign(settings *models.Settings, field Field, value interface{}) error {
	if accessor, ok := stringFields[field]; ok {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w `%s`, expected string", ErrInvalidValue, field)
		}
		*accessor(settings) = v
		return nil
	}
	if accessor, ok := boolFields[field]; ok {
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w `%s`, expected bool", ErrInvalidValue, field)
		}
		*accessor(settings) = v
		return nil
	}
	return fmt.Errorf("%w `%s`", ErrUnknownField, field)
}

// Values returns every field keyed by its API name
func Values(settings models.Settings) map[Field]interface{} {
	values := make(map[Field]interface{}, len(stringFields)+len(boolFields))
	for field, accessor := range stringFields {
		values[field] = *accessor(&settings)
	}
	for field, accessor := range boolFields {
		values[field] = *accessor(&settings)
	}
	return values
}
