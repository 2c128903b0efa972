package logger

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/parameter"
)

// New builds the root logger tagged with a fresh session id
// The terminal owns stdout and stderr, so logs only ever go to a file
// Without a file, development mode writes to parameter.DevLogFile and production mode is disabled
func New(cfg config.LogConfig) (*zap.Logger, string, error) {
	session := uuid.NewString()

	if cfg.File == "" && !cfg.Development {
		return zap.NewNop(), session, nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, session, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	path := cfg.File
	if path == "" {
		path = parameter.DevLogFile
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	log, err := zc.Build()
	if err != nil {
		return nil, session, fmt.Errorf("build logger: %w", err)
	}
	return log.With(zap.String("session", session)), session, nil
}
