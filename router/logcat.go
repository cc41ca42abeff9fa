package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LogcatController captures the logcat of running Android emulators
type LogcatController interface {
	StartLogcat(ctx context.Context, name string) error
	StopLogcat(name string) error
	LogcatLines(name string, n int) ([]string, error)
}

type LogcatResponse struct {
	Lines []string `json:"lines"`
}

// @Summary      Start logcat capture
// @Description  Streams the logcat of a running Android emulator to a process log
// @Tags         logcat
// @Produce      json
// @Param        id path string true "AVD name"
// @Success      200 {object} JsonResponse
// @Failure      404 {object} JsonErrorResponse
// @Failure      501 {object} JsonErrorResponse
// @Router       /logcat/{id}/start [post]
func (h *Handler) StartLogcat(c *gin.Context) {
	id := c.Param("id")
	if !h.logcatEnabled(c, "start_logcat") {
		return
	}
	if err := h.Logcat.StartLogcat(c.Request.Context(), id); err != nil {
		JSONError(c.Writer, "start_logcat", err.Error(), errorStatus(err))
		return
	}
	SimpleJSONResponse(c.Writer, fmt.Sprintf("Capturing logcat of `%s`", id), http.StatusOK)
}

// @Summary      Stop logcat capture
// @Tags         logcat
// @Produce      json
// @Param        id path string true "AVD name"
// @Success      200 {object} JsonResponse
// @Failure      404 {object} JsonErrorResponse
// @Router       /logcat/{id}/stop [post]
func (h *Handler) StopLogcat(c *gin.Context) {
	id := c.Param("id")
	if !h.logcatEnabled(c, "stop_logcat") {
		return
	}
	if err := h.Logcat.StopLogcat(id); err != nil {
		JSONError(c.Writer, "stop_logcat", err.Error(), errorStatus(err))
		return
	}
	SimpleJSONResponse(c.Writer, fmt.Sprintf("Stopped logcat of `%s`", id), http.StatusOK)
}

// @Summary      Get logcat lines
// @Description  Returns the last captured logcat lines of an emulator
// @Tags         logcat
// @Produce      json
// @Param        id    path  string true  "AVD name"
// @Param        lines query int    false "Number of lines, 1000 by default"
// @Success      200 {object} LogcatResponse
// @Failure      400 {object} JsonErrorResponse
// @Failure      404 {object} JsonErrorResponse
// @Router       /logcat/{id} [get]
func (h *Handler) GetLogcat(c *gin.Context) {
	id := c.Param("id")
	if !h.logcatEnabled(c, "get_logcat") {
		return
	}

	n := logLines
	if value := c.Query("lines"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			JSONError(c.Writer, "get_logcat", fmt.Sprintf("Invalid lines value `%s`", value), http.StatusBadRequest)
			return
		}
		n = parsed
	}

	lines, err := h.Logcat.LogcatLines(id, n)
	if err != nil {
		JSONError(c.Writer, "get_logcat", err.Error(), errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, LogcatResponse{Lines: lines})
}

func (h *Handler) logcatEnabled(c *gin.Context, event string) bool {
	if h.Logcat == nil {
		JSONError(c.Writer, event, "Logcat capture is not available", http.StatusNotImplemented)
		return false
	}
	return true
}
