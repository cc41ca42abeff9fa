package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/GADS-emulator-manager/settings"
	"github.com/shamanec/GADS-emulator-manager/validation"
)

type SettingsResponse struct {
	Settings map[settings.Field]interface{}        `json:"settings"`
	Errors   map[settings.Field]validation.Outcome `json:"errors"`
	Valid    bool                                  `json:"valid"`
}

type SaveResponse struct {
	Saved  bool                                  `json:"saved"`
	Errors map[settings.Field]validation.Outcome `json:"errors"`
}

func (h *Handler) settingsResponse() SettingsResponse {
	return SettingsResponse{
		Settings: settings.Values(h.Settings.Snapshot()),
		Errors:   h.Settings.Errors(),
		Valid:    h.Settings.IsValid(),
	}
}

// @Summary      Get settings
// @Description  Returns the settings being edited and the recorded validation outcomes
// @Tags         settings
// @Produce      json
// @Success      200 {object} SettingsResponse
// @Router       /settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsResponse())
}

// @Summary      Update settings
// @Description  Sets the provided fields, keys are the camelCase field names. Nothing is persisted until save.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        fields body map[string]interface{} true "Fields to set"
// @Success      200 {object} SettingsResponse
// @Failure      400 {object} JsonErrorResponse
// @Router       /settings [patch]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		JSONError(c.Writer, "update_settings", "Could not parse request body - "+err.Error(), http.StatusBadRequest)
		return
	}

	fields := make(map[settings.Field]interface{}, len(body))
	for name, value := range body {
		field, err := settings.ParseField(name)
		if err != nil {
			JSONError(c.Writer, "update_settings", err.Error(), http.StatusBadRequest)
			return
		}
		fields[field] = value
	}
	// a bad value type leaves every field as it was
	if err := h.Settings.SetMany(fields); err != nil {
		JSONError(c.Writer, "update_settings", err.Error(), errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, h.settingsResponse())
}

// @Summary      Validate settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} SettingsResponse
// @Router       /settings/validate [post]
func (h *Handler) ValidateSettings(c *gin.Context) {
	h.Settings.ValidateAll(c.Request.Context())
	c.JSON(http.StatusOK, h.settingsResponse())
}

// @Summary      Validate settings field
// @Tags         settings
// @Produce      json
// @Param        field path string true "camelCase field name"
// @Success      200 {object} validation.Outcome
// @Failure      400 {object} JsonErrorResponse
// @Router       /settings/validate/{field} [post]
func (h *Handler) ValidateSettingsField(c *gin.Context) {
	field, err := settings.ParseField(c.Param("field"))
	if err != nil {
		JSONError(c.Writer, "validate_settings_field", err.Error(), http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, h.Settings.ValidateField(c.Request.Context(), field))
}

// @Summary      Save settings
// @Description  Validates every field and persists the settings only when all are valid
// @Tags         settings
// @Produce      json
// @Success      200 {object} SaveResponse
// @Failure      422 {object} SaveResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /settings/save [post]
func (h *Handler) SaveSettings(c *gin.Context) {
	saved, err := h.Settings.Save(c.Request.Context())
	if err != nil {
		JSONError(c.Writer, "save_settings", err.Error(), http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	if !saved {
		code = http.StatusUnprocessableEntity
	}
	c.JSON(code, SaveResponse{Saved: saved, Errors: h.Settings.Errors()})
}

// @Summary      Load settings
// @Description  Reloads the persisted settings, discarding unsaved changes and validation outcomes
// @Tags         settings
// @Produce      json
// @Success      200 {object} SettingsResponse
// @Router       /settings/load [post]
func (h *Handler) LoadSettings(c *gin.Context) {
	h.Settings.Load(c.Request.Context())
	c.JSON(http.StatusOK, h.settingsResponse())
}
