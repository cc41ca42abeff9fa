package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/GADS-emulator-manager/models"
)

type ScreenshotResponse struct {
	Path string `json:"path"`
}

// @Summary      Get emulators
// @Description  Returns the emulators of the active platform and whether a refresh is running
// @Tags         emulators
// @Produce      json
// @Success      200 {object} devices.Snapshot
// @Router       /emulators [get]
func (h *Handler) GetEmulators(c *gin.Context) {
	c.JSON(http.StatusOK, h.Registry.Snapshot())
}

// @Summary      Refresh emulators
// @Description  Makes the platform active and reloads its emulators
// @Tags         emulators
// @Produce      json
// @Param        platform path string true "ios, android or harmony"
// @Success      200 {object} devices.Snapshot
// @Failure      400 {object} JsonErrorResponse
// @Failure      409 {object} JsonErrorResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /emulators/refresh/{platform} [post]
func (h *Handler) RefreshEmulators(c *gin.Context) {
	platform, err := models.ParsePlatform(c.Param("platform"))
	if err != nil {
		JSONError(c.Writer, "refresh_emulators", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Registry.Refresh(c.Request.Context(), platform); err != nil {
		JSONError(c.Writer, "refresh_emulators", err.Error(), errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, h.Registry.Snapshot())
}

// @Summary      Get platform capabilities
// @Description  Reports which emulator operations the platform supports
// @Tags         emulators
// @Produce      json
// @Param        platform path string true "ios, android or harmony"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} JsonErrorResponse
// @Router       /emulators/capabilities/{platform} [get]
func (h *Handler) GetCapabilities(c *gin.Context) {
	platform, err := models.ParsePlatform(c.Param("platform"))
	if err != nil {
		JSONError(c.Writer, "emulator_capabilities", err.Error(), http.StatusBadRequest)
		return
	}

	capabilities, err := h.Registry.Capabilities(platform)
	if err != nil {
		JSONError(c.Writer, "emulator_capabilities", err.Error(), errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, capabilities)
}

// @Summary      Start emulator
// @Tags         emulators
// @Produce      json
// @Param        id path string true "Emulator ID"
// @Success      200 {object} JsonResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /emulators/{id}/start [post]
func (h *Handler) StartEmulator(c *gin.Context) {
	id := c.Param("id")
	if err := h.Registry.Start(c.Request.Context(), id); err != nil {
		JSONError(c.Writer, "start_emulator", err.Error(), errorStatus(err))
		return
	}
	SimpleJSONResponse(c.Writer, fmt.Sprintf("Started emulator `%s`", id), http.StatusOK)
}

// @Summary      Stop emulator
// @Tags         emulators
// @Produce      json
// @Param        id path string true "Emulator ID"
// @Success      200 {object} JsonResponse
// @Failure      404 {object} JsonErrorResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /emulators/{id}/stop [post]
func (h *Handler) StopEmulator(c *gin.Context) {
	id := c.Param("id")
	if err := h.Registry.Stop(c.Request.Context(), id); err != nil {
		JSONError(c.Writer, "stop_emulator", err.Error(), errorStatus(err))
		return
	}
	SimpleJSONResponse(c.Writer, fmt.Sprintf("Stopped emulator `%s`", id), http.StatusOK)
}

// @Summary      Delete emulator
// @Description  Deletes the emulator, does nothing on platforms without delete support
// @Tags         emulators
// @Produce      json
// @Param        id path string true "Emulator ID"
// @Success      200 {object} JsonResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /emulators/{id}/delete [post]
func (h *Handler) DeleteEmulator(c *gin.Context) {
	id := c.Param("id")
	if err := h.Registry.Delete(c.Request.Context(), id); err != nil {
		JSONError(c.Writer, "delete_emulator", err.Error(), errorStatus(err))
		return
	}
	SimpleJSONResponse(c.Writer, fmt.Sprintf("Deleted emulator `%s`", id), http.StatusOK)
}

// @Summary      Wipe emulator data
// @Description  Wipes the emulator user data, does nothing on platforms without wipe support
// @Tags         emulators
// @Produce      json
// @Param        id path string true "Emulator ID"
// @Success      200 {object} JsonResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /emulators/{id}/wipe [post]
func (h *Handler) WipeEmulator(c *gin.Context) {
	id := c.Param("id")
	if err := h.Registry.Wipe(c.Request.Context(), id); err != nil {
		JSONError(c.Writer, "wipe_emulator", err.Error(), errorStatus(err))
		return
	}
	SimpleJSONResponse(c.Writer, fmt.Sprintf("Wiped emulator `%s`", id), http.StatusOK)
}

// @Summary      Take emulator screenshot
// @Tags         emulators
// @Produce      json
// @Param        id path string true "Emulator ID"
// @Success      200 {object} ScreenshotResponse
// @Failure      500 {object} JsonErrorResponse
// @Router       /emulators/{id}/screenshot [post]
func (h *Handler) EmulatorScreenshot(c *gin.Context) {
	path, err := h.Registry.Screenshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		JSONError(c.Writer, "emulator_screenshot", err.Error(), errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, ScreenshotResponse{Path: path})
}

// @Summary      Get USB devices
// @Description  Lists the physical devices attached to the host
// @Tags         usb-devices
// @Produce      json
// @Success      200 {array} models.USBDevice
// @Router       /usb-devices [get]
func (h *Handler) GetUSBDevices(c *gin.Context) {
	c.JSON(http.StatusOK, h.USB.List(c.Request.Context()))
}
