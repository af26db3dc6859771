package config

import (
	"sync"

	"go.uber.org/zap"
)

var (
	procLogger *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the process logger: JSON in production, console otherwise.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		var err error
		if App().Env == "production" {
			procLogger, err = zap.NewProduction()
		} else {
			procLogger, err = zap.NewDevelopment()
		}
		if err != nil {
			procLogger = zap.NewNop()
		}
	})
	return procLogger
}
