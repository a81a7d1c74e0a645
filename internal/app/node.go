package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scenarios/internal/adapters/composer"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scenarios/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scenarios/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scenarios/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scenarios/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/scenarios/internal/core/ports"
	"go.trai.ch/scenarios/internal/engine/licenses"
	"go.trai.ch/scenarios/internal/engine/scenario"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			manifest.NodeID,
			composer.NodeID,
			scenario.MaterializerNodeID,
			scenario.InstallerNodeID,
			licenses.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	packages, err := graft.Dep[ports.PackageManager](ctx)
	if err != nil {
		return nil, err
	}

	materializer, err := graft.Dep[*scenario.Materializer](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[*scenario.Installer](ctx)
	if err != nil {
		return nil, err
	}

	updater, err := graft.Dep[*licenses.Updater](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, store, packages, materializer, installer, updater), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: provider,
	}, nil
}
