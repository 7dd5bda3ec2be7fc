package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/logger"
)

// HealthLiveness godoc
// @Summary      Liveness probe
// @Description  Confirms the HTTP server is up and the handler is reachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.HealthResponse
// @Router       /healthz [get]
func HealthLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, domain.HealthResponse{Status: "ok"})
}

// HealthReadiness godoc
// @Summary      Readiness probe
// @Description  Confirms the state file's directory is writable, so a pull's snapshot step won't fail.
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.ReadinessResponse
// @Failure      503  {object}  domain.ReadinessResponse
// @Router       /readyz [get]
func HealthReadiness(stateFilePath string) gin.HandlerFunc {
	dir := filepath.Dir(stateFilePath)
	return func(c *gin.Context) {
		probe, err := os.CreateTemp(dir, ".readyz-*.tmp")
		if err != nil {
			logger.Logger.Warn("readiness probe failed: state directory not writable", zap.String("dir", dir), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, domain.ReadinessResponse{
				Status: "not ready",
				Error:  fmt.Sprintf("state directory %s is not writable: %s", dir, err),
			})
			return
		}
		name := probe.Name()
		probe.Close()
		os.Remove(name)

		c.JSON(http.StatusOK, domain.ReadinessResponse{Status: "ready"})
	}
}
