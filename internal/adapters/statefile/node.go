package statefile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scenarios/internal/adapters/logger"
	"go.trai.ch/scenarios/internal/core/ports"
)

// NodeID is the unique identifier for the state guard Graft node.
const NodeID graft.ID = "adapter.state_guard"

func init() {
	graft.Register(graft.Node[ports.StateGuard]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.StateGuard, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewGuard(log), nil
		},
	})
}
