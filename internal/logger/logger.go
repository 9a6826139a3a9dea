package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger for the given application environment.
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
