// Package server wires the lighthouse's HTTP contract: authenticated pull
// and metrics-push endpoints, an unauthenticated Prometheus exposition, and
// liveness/readiness probes.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"wgpull-lighthouse/internal/engine"
	"wgpull-lighthouse/internal/logger"
	"wgpull-lighthouse/internal/metrics"
)

// NewRouter builds the fully wired Gin engine.
func NewRouter(eng *engine.Engine, metricsCache *metrics.Cache, lighthouseKey, nodeKey, stateFilePath string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ZapLogger(log))
	r.Use(cors.Default())

	r.GET("/healthz", HealthLiveness)
	r.GET("/readyz", HealthReadiness(stateFilePath))
	r.GET("/metrics", gin.WrapH(metricsCache.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pullHandler := NewPullHandler(eng)
	metricsHandler := NewMetricsPushHandler(eng)

	authorized := r.Group("/api/v1")
	authorized.Use(AuthMiddleware(lighthouseKey, nodeKey))
	authorized.POST("/pull", pullHandler.Pull)
	authorized.POST("/metrics", metricsHandler.PushMetrics)

	logger.Logger.Info("router initialized")
	return r
}
