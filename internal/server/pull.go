package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/engine"
	"wgpull-lighthouse/internal/logger"
	"wgpull-lighthouse/internal/validation"
)

// PullHandler drives POST /api/v1/pull.
type PullHandler struct {
	engine *engine.Engine
}

// NewPullHandler builds a PullHandler.
func NewPullHandler(eng *engine.Engine) *PullHandler {
	return &PullHandler{engine: eng}
}

// Pull godoc
// @Summary      Submit a node's parameters and receive its peer list
// @Description  Upserts the calling node's lease, runs the key-rotation and expiry state machines, and returns the node's current peers with pairwise pre-shared keys.
// @Tags         pull
// @Accept       json
// @Produce      json
// @Param        request  body      domain.NodePullRequest  true  "Node parameters"
// @Success      200      {object}  domain.NodePullResponse
// @Failure      400      {object}  domain.ErrorResponse
// @Failure      401      {object}  domain.ErrorResponse
// @Failure      500      {object}  domain.ErrorResponse
// @Router       /api/v1/pull [post]
func (h *PullHandler) Pull(c *gin.Context) {
	var req domain.NodePullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("pull request body failed to bind", zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: domain.ErrBadRequestBody.Error()})
		return
	}
	if err := validation.PullRequest(&req); err != nil {
		logger.Logger.Warn("pull request failed validation", zap.String("hostname", req.Hostname), zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.engine.Pull(c.Request.Context(), &req)
	if err != nil {
		logger.Logger.Error("pull transaction failed", zap.String("hostname", req.Hostname), zap.Error(err))
		switch {
		case errors.Is(err, domain.ErrBadResponseBody):
			c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: domain.ErrInternalError.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
