package logging

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. APP_ENV=development switches to the
// human-readable console encoder.
func New() *zap.Logger {
	if os.Getenv("APP_ENV") == "development" {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
