package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/GADS-emulator-manager/logger"
)

const logLines = 1000

// @Summary      Get provider logs
// @Description  Provides the last provider log lines as plain text response
// @Tags         provider-logs
// @Produce      plain
// @Success      200
// @Router       /logs [get]
func (h *Handler) GetLogs(c *gin.Context) {
	lines, err := logger.TailLines(h.LogFile, logLines)
	if err != nil {
		h.Logger.LogWarn("get_provider_logs", "Attempted to get provider logs but no logs available.")
		c.String(http.StatusOK, "No logs available.")
		return
	}
	c.String(http.StatusOK, strings.Join(lines, "\n"))
}
