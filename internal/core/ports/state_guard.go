package ports

import "go.trai.ch/scenarios/internal/core/domain"

// StateGuard captures and restores the shared installed-state file.
//
// Both operations are best-effort: a missing file yields an empty snapshot,
// and restoring an empty snapshot does nothing.
//
//go:generate go run go.uber.org/mock/mockgen -source=state_guard.go -destination=mocks/mock_state_guard.go -package=mocks
type StateGuard interface {
	// Snapshot reads the installed-state file under projectDir/vendorDir.
	Snapshot(projectDir, vendorDir string) domain.StateSnapshot

	// Restore writes snap back, but only if the file still exists.
	Restore(snap domain.StateSnapshot)
}
