package app

import (
	"go.trai.ch/scenarios/internal/adapters/telemetry"
	"go.trai.ch/scenarios/internal/core/ports"
)

// Components bundles what the command line entrypoint needs.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry *telemetry.Provider
}
