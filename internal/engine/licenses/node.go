package licenses

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scenarios/internal/adapters/composer" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/scenarios/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/scenarios/internal/core/ports"
)

// NodeID is the unique identifier for the license updater Graft node.
const NodeID graft.ID = "engine.licenses"

func init() {
	graft.Register(graft.Node[*Updater]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			composer.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Updater, error) {
			packages, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewUpdater(packages, log), nil
		},
	})
}
