package logger

import (
	"sync"

	"sales-report-service/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger builds the process-wide logger from configuration. Called once
// during bootstrap; GetLogger falls back to production defaults if InitLogger
// never ran (as in tests).
func InitLogger(cfg *config.Config) {
	once.Do(func() {
		var zcfg zap.Config
		if cfg.Server.Env == "development" {
			zcfg = zap.NewDevelopmentConfig()
		} else {
			zcfg = zap.NewProductionConfig()
		}
		zcfg.OutputPaths = []string{"stdout"}

		if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			zcfg.Level = zap.NewAtomicLevelAt(level)
		}

		logger, err := zcfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
}

// GetLogger returns the process-wide logger
func GetLogger() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
	return instance
}
