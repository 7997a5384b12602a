package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/config"
)

// New builds the application logger. The terminal front-end owns stdout,
// so its logs go to a file instead.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.UI == config.UITerminal {
		zc.OutputPaths = []string{cfg.LogFile()}
		zc.ErrorOutputPaths = []string{cfg.LogFile()}
	}

	return zc.Build()
}
