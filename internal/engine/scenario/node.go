package scenario

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scenarios/internal/adapters/composer"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/scenarios/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/scenarios/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/scenarios/internal/adapters/statefile" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/scenarios/internal/core/ports"
)

const (
	// MaterializerNodeID is the unique identifier for the materializer Graft node.
	MaterializerNodeID graft.ID = "engine.materializer"
	// InstallerNodeID is the unique identifier for the installer Graft node.
	InstallerNodeID graft.ID = "engine.installer"
)

func init() {
	graft.Register(graft.Node[*Materializer]{
		ID:        MaterializerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			composer.NodeID,
			statefile.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Materializer, error) {
			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			packages, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}

			guard, err := graft.Dep[ports.StateGuard](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewMaterializer(store, packages, guard, log), nil
		},
	})

	graft.Register(graft.Node[*Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			composer.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			packages, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewInstaller(packages, log), nil
		},
	})
}
