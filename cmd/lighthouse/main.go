// @title        wgpull lighthouse API
// @version      1.0
// @description  Control-plane API for a full-mesh WireGuard overlay network.
// @BasePath     /

package main

import (
	"log"

	_ "wgpull-lighthouse/docs"
	"wgpull-lighthouse/internal/clock"
	"wgpull-lighthouse/internal/config"
	"wgpull-lighthouse/internal/engine"
	"wgpull-lighthouse/internal/logger"
	"wgpull-lighthouse/internal/metrics"
	"wgpull-lighthouse/internal/psk"
	"wgpull-lighthouse/internal/server"
	"wgpull-lighthouse/internal/state"

	"go.uber.org/zap"
)

func main() {
	configPath, err := config.DiscoverConfigPath()
	if err != nil {
		log.Fatalf("FATAL: %s", err)
	}

	cfgFile, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("FATAL: failed to load configuration: %s", err)
	}
	cfg := cfgFile.Lighthouse

	logger.Init(cfg.StateFile)
	defer logger.Logger.Sync()

	sysClock := clock.NewSystemClock()
	nodes := state.NewStore(sysClock)
	keys := psk.NewStore(psk.NewRandomGenerator())

	if err := engine.Restore(cfg.StateFile, nodes, keys); err != nil {
		logger.Logger.Fatal("failed to restore state file", zap.String("path", cfg.StateFile), zap.Error(err))
	}

	metricsCache := metrics.NewCache()
	eng := engine.New(engine.Config{
		KeyRotationInterval: cfg.RotationInterval(),
		KeyRotationWindow:   cfg.RotationWindow(),
		NodeTimeout:         cfg.NodeTimeout(),
		StateFilePath:       cfg.StateFile,
	}, sysClock, nodes, keys, metricsCache, logger.Logger)

	router := server.NewRouter(eng, metricsCache, cfg.LighthouseKey, cfg.NodeKey, cfg.StateFile, logger.Logger)

	addr := cfg.ListenAddr()
	logger.Logger.Info("lighthouse listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Logger.Fatal("server exited", zap.Error(err))
	}
}
