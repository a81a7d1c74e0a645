// Package composer drives the Composer CLI as the project's package manager.
package composer

import (
	"context"
	"io"
	"sync"

	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
)

// DefaultBinary is the executable used when no override is configured.
const DefaultBinary = "composer"

// Adapter implements ports.PackageManager on top of an Executor.
type Adapter struct {
	executor ports.Executor

	mu     sync.RWMutex
	binary string
}

// New creates an Adapter running the default binary.
func New(executor ports.Executor) *Adapter {
	return &Adapter{executor: executor, binary: DefaultBinary}
}

// SetBinary overrides the executable. An empty path restores the default.
func (a *Adapter) SetBinary(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if path == "" {
		path = DefaultBinary
	}
	a.binary = path
}

// Binary returns the executable currently in use.
func (a *Adapter) Binary() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.binary
}

// ResolveLock runs "update --no-install" so only the lock file is written.
func (a *Adapter) ResolveLock(ctx context.Context, dir string, opts domain.LockOptions) (domain.CommandResult, error) {
	args := []string{"--no-install", "--no-scripts", "--no-plugins"}
	args = append(args, lockFlags(opts)...)
	args = append(args, opts.Packages...)

	return a.run(ctx, domain.Command{Dir: dir, Env: opts.Env.Environ()}, "update", args...)
}

// Validate runs "validate".
func (a *Adapter) Validate(ctx context.Context, dir string) (domain.CommandResult, error) {
	return a.run(ctx, domain.Command{Dir: dir}, "validate")
}

// Install runs the strategy's sub-command with distribution artifacts and no scripts.
func (a *Adapter) Install(ctx context.Context, dir string, cmd domain.InstallCommand) (domain.CommandResult, error) {
	args := append([]string{"--prefer-dist", "--no-scripts"}, cmd.Flags...)
	return a.run(ctx, domain.Command{Dir: dir, Stdout: cmd.Stdout}, cmd.SubCommand, args...)
}

// RunScript runs a manifest script.
func (a *Adapter) RunScript(ctx context.Context, dir, script string) (domain.CommandResult, error) {
	return a.run(ctx, domain.Command{Dir: dir}, "run-script", script)
}

// Licenses lists the licenses of the non-dev dependencies.
func (a *Adapter) Licenses(ctx context.Context, dir string) (domain.CommandResult, error) {
	return a.run(ctx, domain.Command{Dir: dir}, "licenses", "--no-dev")
}

// Info streams the installed package list to w.
func (a *Adapter) Info(ctx context.Context, dir string, w io.Writer) (domain.CommandResult, error) {
	return a.run(ctx, domain.Command{Dir: dir, Stdout: w}, "info")
}

// run invokes "<binary> -n <sub> --working-dir=<dir> args...".
func (a *Adapter) run(ctx context.Context, cmd domain.Command, sub string, args ...string) (domain.CommandResult, error) {
	cmd.Name = a.Binary()
	cmd.Args = []string{"-n", sub}
	if cmd.Dir != "" {
		cmd.Args = append(cmd.Args, "--working-dir="+cmd.Dir)
	}
	cmd.Args = append(cmd.Args, args...)
	return a.executor.Run(ctx, cmd)
}

func lockFlags(opts domain.LockOptions) []string {
	flags := []struct {
		set  bool
		name string
	}{
		{opts.DryRun, "--dry-run"},
		{opts.NoDev, "--no-dev"},
		{opts.WithDependencies, "--with-dependencies"},
		{opts.WithAllDependencies, "--with-all-dependencies"},
		{opts.IgnorePlatformReqs, "--ignore-platform-reqs"},
		{opts.PreferStable, "--prefer-stable"},
		{opts.PreferLowest, "--prefer-lowest"},
	}

	var out []string
	for _, f := range flags {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}
