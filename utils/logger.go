package utils

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process logger built by InitializeLogger.
	Logger     *zap.Logger
	loggerOnce sync.Once
)

// NewLogger builds a zap logger: JSON in production, coloured console otherwise.
// An empty level means info in production and debug elsewhere.
func NewLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	return cfg.Build()
}

// InitializeLogger sets up the process logger once.
func InitializeLogger(env, level string) *zap.Logger {
	loggerOnce.Do(func() {
		l, err := NewLogger(env, level)
		if err != nil {
			l, _ = NewLogger(env, "")
			l.Warn("falling back to default log level", zap.Error(err))
		}
		Logger = l
		zap.ReplaceGlobals(l)
	})
	return Logger
}

// GetLogger retrieves the process logger, building a development one if none was set up.
func GetLogger() *zap.Logger {
	return InitializeLogger("development", "")
}
