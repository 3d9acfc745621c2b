package logger

import (
	"go.uber.org/zap"

	"aptiprep/internal/config"
)

// New returns a JSON production logger in production and a console development logger otherwise
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
