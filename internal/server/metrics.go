package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/engine"
	"wgpull-lighthouse/internal/logger"
	"wgpull-lighthouse/internal/validation"
)

// MetricsPushHandler drives POST /api/v1/metrics.
type MetricsPushHandler struct {
	engine *engine.Engine
}

// NewMetricsPushHandler builds a MetricsPushHandler.
func NewMetricsPushHandler(eng *engine.Engine) *MetricsPushHandler {
	return &MetricsPushHandler{engine: eng}
}

// PushMetrics godoc
// @Summary      Push a node's WireGuard runtime statistics
// @Description  Records the node's latest per-peer handshake and transfer counters for Prometheus exposition.
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        request  body  domain.NodeMetricsPushRequest  true  "Node metrics"
// @Success      204
// @Failure      400  {object}  domain.ErrorResponse
// @Failure      401  {object}  domain.ErrorResponse
// @Router       /api/v1/metrics [post]
func (h *MetricsPushHandler) PushMetrics(c *gin.Context) {
	var req domain.NodeMetricsPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("metrics push body failed to bind", zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: domain.ErrBadRequestBody.Error()})
		return
	}
	if err := validation.MetricsPushRequest(&req); err != nil {
		logger.Logger.Warn("metrics push failed validation", zap.String("hostname", req.Hostname), zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: err.Error()})
		return
	}

	h.engine.PushMetrics(&req)
	c.Status(http.StatusNoContent)
}
