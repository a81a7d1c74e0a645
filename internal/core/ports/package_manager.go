package ports

import (
	"context"
	"io"

	"go.trai.ch/scenarios/internal/core/domain"
)

// PackageManager is the external dependency resolver and installer.
//
// Every method runs exactly one non-interactive invocation in dir and reports
// its exit status through the returned CommandResult.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// ResolveLock resolves dependencies and writes the lock without installing anything.
	ResolveLock(ctx context.Context, dir string, opts domain.LockOptions) (domain.CommandResult, error)

	// Validate checks the manifest in dir.
	Validate(ctx context.Context, dir string) (domain.CommandResult, error)

	// Install installs or updates dependencies in dir with distribution artifacts and no scripts.
	Install(ctx context.Context, dir string, cmd domain.InstallCommand) (domain.CommandResult, error)

	// RunScript runs a named manifest script.
	RunScript(ctx context.Context, dir, script string) (domain.CommandResult, error)

	// Licenses lists the licenses of the non-dev dependencies.
	Licenses(ctx context.Context, dir string) (domain.CommandResult, error)

	// Info streams the installed package list to w.
	Info(ctx context.Context, dir string, w io.Writer) (domain.CommandResult, error)
}
