// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/scenarios/internal/adapters/composer"
	_ "go.trai.ch/scenarios/internal/adapters/config"
	_ "go.trai.ch/scenarios/internal/adapters/logger"
	_ "go.trai.ch/scenarios/internal/adapters/manifest"
	_ "go.trai.ch/scenarios/internal/adapters/shell"
	_ "go.trai.ch/scenarios/internal/adapters/statefile"
	_ "go.trai.ch/scenarios/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/scenarios/internal/app"
	_ "go.trai.ch/scenarios/internal/engine/licenses"
	_ "go.trai.ch/scenarios/internal/engine/scenario"
)
