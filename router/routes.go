// Package router exposes the emulator registry and the settings store over HTTP
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/GADS-emulator-manager/android_emu"
	"github.com/shamanec/GADS-emulator-manager/devices"
	"github.com/shamanec/GADS-emulator-manager/events"
	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/settings"
	"github.com/swaggo/swag"
)

type JsonErrorResponse struct {
	EventName    string `json:"event"`
	ErrorMessage string `json:"error_message"`
}

type JsonResponse struct {
	Message string `json:"message"`
}

// Write to a ResponseWriter an event and message with a response code
func JSONError(w http.ResponseWriter, event string, error_string string, code int) {
	var errorMessage = JsonErrorResponse{
		EventName:    event,
		ErrorMessage: error_string}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorMessage)
}

// Write to a ResponseWriter an event and message with a response code
func SimpleJSONResponse(w http.ResponseWriter, responseMessage string, code int) {
	var message = JsonResponse{
		Message: responseMessage,
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(message)
}

type USBLister interface {
	List(ctx context.Context) []models.USBDevice
}

// Handler carries the stores the routes act on
type Handler struct {
	Registry    *devices.Registry
	Settings    *settings.Store
	USB         USBLister
	Logcat      LogcatController
	Broadcaster *events.Broadcaster
	Logger      *logger.CustomLogger
	LogFile     string
}

func HandleRequests(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/emulators", h.GetEmulators)
	router.POST("/emulators/refresh/:platform", h.RefreshEmulators)
	router.GET("/emulators/capabilities/:platform", h.GetCapabilities)
	router.POST("/emulators/:id/start", h.StartEmulator)
	router.POST("/emulators/:id/stop", h.StopEmulator)
	router.POST("/emulators/:id/delete", h.DeleteEmulator)
	router.POST("/emulators/:id/wipe", h.WipeEmulator)
	router.POST("/emulators/:id/screenshot", h.EmulatorScreenshot)
	router.GET("/usb-devices", h.GetUSBDevices)

	router.POST("/logcat/:id/start", h.StartLogcat)
	router.POST("/logcat/:id/stop", h.StopLogcat)
	router.GET("/logcat/:id", h.GetLogcat)

	router.GET("/settings", h.GetSettings)
	router.PATCH("/settings", h.UpdateSettings)
	router.POST("/settings/validate", h.ValidateSettings)
	router.POST("/settings/validate/:field", h.ValidateSettingsField)
	router.POST("/settings/save", h.SaveSettings)
	router.POST("/settings/load", h.LoadSettings)

	router.GET("/events", h.Events)
	router.GET("/logs", h.GetLogs)
	router.GET("/swagger/doc.json", SwaggerDoc)

	return router
}

// errorStatus maps store and backend errors to a response code
func errorStatus(err error) int {
	switch {
	case errors.Is(err, devices.ErrUnknownPlatform), errors.Is(err, settings.ErrUnknownField), errors.Is(err, settings.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrDeviceNotFound), errors.Is(err, android_emu.ErrLogcatNotRunning):
		return http.StatusNotFound
	case errors.Is(err, devices.ErrStaleRefresh):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrHostUnsupported), errors.Is(err, android_emu.ErrLogcatDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func SwaggerDoc(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		JSONError(c.Writer, "swagger_doc", "Swagger document is not registered", http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
