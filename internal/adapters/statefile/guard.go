// Package statefile protects the installed-state file shared by all scenarios.
package statefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
)

// Guard implements ports.StateGuard on the local filesystem.
type Guard struct {
	logger ports.Logger
}

// NewGuard creates a new Guard.
func NewGuard(logger ports.Logger) *Guard {
	return &Guard{logger: logger}
}

// Path returns the installed-state file under projectDir/vendorDir.
func Path(projectDir, vendorDir string) string {
	if !filepath.IsAbs(vendorDir) {
		vendorDir = filepath.Join(projectDir, vendorDir)
	}
	return filepath.Join(vendorDir, filepath.FromSlash(domain.InstalledStateFile))
}

// Snapshot captures the installed-state file. Absent or unreadable files give an empty snapshot.
func (g *Guard) Snapshot(projectDir, vendorDir string) domain.StateSnapshot {
	path := Path(projectDir, vendorDir)

	// #nosec G304 -- path is derived from the project's vendor directory
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			g.logger.Warn(fmt.Sprintf("cannot snapshot %s: %v", path, err))
		}
		return domain.StateSnapshot{Path: path}
	}

	return domain.StateSnapshot{
		Path:    path,
		Content: content,
		Digest:  xxhash.Sum64(content),
	}
}

// Restore writes the snapshot back if the file still exists. It never creates the file.
func (g *Guard) Restore(snap domain.StateSnapshot) {
	if snap.Empty() {
		return
	}

	// #nosec G304 -- path comes from a snapshot taken by this guard
	current, err := os.ReadFile(snap.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			g.logger.Warn(fmt.Sprintf("cannot restore %s: %v", snap.Path, err))
		}
		return
	}

	if xxhash.Sum64(current) == snap.Digest {
		return
	}

	g.logger.Debug(fmt.Sprintf("Restoring %s, changed while scenarios were created.", snap.Path))
	if err := os.WriteFile(snap.Path, snap.Content, domain.FilePerm); err != nil {
		g.logger.Warn(fmt.Sprintf("cannot restore %s: %v", snap.Path, err))
	}
}
