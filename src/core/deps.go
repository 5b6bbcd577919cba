package core

import (
	"log/slog"

	"audio-briefing/src/services"
)

// Deps provides dependencies for activities and the in-process dispatcher
// All dependencies must be initialized in cmd/worker or cmd/server
type Deps struct {
	Relay  services.EmailRelay
	Logger *slog.Logger
}

// NewDeps creates a new Deps instance with the provided relay and logger
func NewDeps(relay services.EmailRelay, logger *slog.Logger) *Deps {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deps{
		Relay:  relay,
		Logger: logger,
	}
}
