package logger

import (
	"go.uber.org/zap"
)

// New returns a production logger for env "production" and a development
// logger otherwise. A non-empty file redirects output away from the terminal.
func New(env, file string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}
	return cfg.Build()
}
