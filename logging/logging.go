package logging

import "go.uber.org/zap"

// New creates a zap logger for the given environment. local gets the human
// friendly example logger, anything unknown is treated as production.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "local":
		return zap.NewExample(), nil
	default:
		return zap.NewProduction()
	}
}
