package scenario

import (
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
)

// withStateGuard runs fn between a snapshot and a restore of the project's
// installed-state file. The restore runs on every exit path, including panics.
func withStateGuard(guard ports.StateGuard, settings *domain.Settings, manifest *domain.Object, fn func() error) error {
	snap := guard.Snapshot(settings.ProjectDir, domain.VendorDir(manifest))
	defer guard.Restore(snap)

	return fn()
}
