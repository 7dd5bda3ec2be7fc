package logger

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Logger is the process-wide zap instance, set by Init.
var Logger *zap.Logger

// Init builds the production logger, writing to both stdout and a log file
// alongside the configured state file's directory.
func Init(stateFilePath string) {
	logFilePath := filepath.Join(filepath.Dir(stateFilePath), "lighthouse.log")

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout", logFilePath}
	cfg.ErrorOutputPaths = []string{"stderr", logFilePath}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}

	Logger = logger
	Logger.Info("logger initialized", zap.String("log_file", logFilePath))
}
