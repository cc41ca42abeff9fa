package models

// Settings is the persisted user configuration.
// The snake_case keys are the storage contract and must not change.
type Settings struct {
	Language                string `json:"language" rethinkdb:"language" validate:"omitempty,oneof=zh-CN en-US"`
	Theme                   string `json:"theme" rethinkdb:"theme" validate:"omitempty,oneof=light dark system"`
	AutoStart               bool   `json:"auto_start" rethinkdb:"auto_start"`
	MinimizeToTray          bool   `json:"minimize_to_tray" rethinkdb:"minimize_to_tray"`
	CloseToMinimize         bool   `json:"close_to_minimize" rethinkdb:"close_to_minimize"`
	AndroidForceKill        bool   `json:"android_force_kill" rethinkdb:"android_force_kill"`
	AndroidHome             string `json:"android_home" rethinkdb:"android_home"`
	DevecoHome              string `json:"deveco_home" rethinkdb:"deveco_home"`
	XcodeHome               string `json:"xcode_home" rethinkdb:"xcode_home"`
	HarmonyEmulatorPath     string `json:"harmony_emulator_path" rethinkdb:"harmony_emulator_path"`
	HarmonyHdcPath          string `json:"harmony_hdc_path" rethinkdb:"harmony_hdc_path"`
	HarmonyImageLocation    string `json:"harmony_image_location" rethinkdb:"harmony_image_location"`
	HarmonyEmulatorLocation string `json:"harmony_emulator_location" rethinkdb:"harmony_emulator_location"`
	ScreenshotDir           string `json:"screenshot_dir" rethinkdb:"screenshot_dir"`
}

// DefaultSettings returns the settings used before anything was persisted
func DefaultSettings() Settings {
	return Settings{
		Language:        "zh-CN",
		Theme:           "system",
		MinimizeToTray:  true,
		CloseToMinimize: true,
	}
}
