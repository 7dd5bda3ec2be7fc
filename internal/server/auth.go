package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wgpull-lighthouse/internal/challenge"
	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/logger"
)

const (
	headerLighthouseKey = "X-Lighthouse-Key"
	headerNodeChallenge = "X-Node-Challenge"
	headerNodeResponse  = "X-Node-Response"
)

// AuthMiddleware verifies the shared lighthouse key and computes the
// node-challenge response that proves this server holds the node key.
// Rejects with 401 before any handler runs; never mutates state on
// failure.
func AuthMiddleware(lighthouseKey, nodeKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(headerLighthouseKey) != lighthouseKey {
			logger.Logger.Warn("rejected request: lighthouse key mismatch", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.ErrorResponse{Error: domain.ErrInvalidLighthouseKey.Error()})
			return
		}

		nonce := c.GetHeader(headerNodeChallenge)
		if nonce == "" {
			logger.Logger.Warn("rejected request: missing node challenge", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.ErrorResponse{Error: domain.ErrInvalidNodeKey.Error()})
			return
		}

		c.Header(headerNodeResponse, challenge.Response(nodeKey, nonce))
		c.Next()
	}
}
