package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Development environments get a
// console encoder at debug level unless the logger settings say otherwise.
func NewLogger(server ServerConfig, cfg LoggerConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if server.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid logger level %q: %w", cfg.Level, err)
		}
		zc.Level = level
	}
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	zc.DisableCaller = cfg.DisableCaller
	zc.DisableStacktrace = cfg.DisableStacktrace

	return zc.Build()
}
