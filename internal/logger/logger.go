package logger

import "go.uber.org/zap"

// New builds a zap logger for the given environment. Loggers are passed
// into constructors explicitly; nothing in this repo logs ambiently.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
