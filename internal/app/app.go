// Package app implements the application layer for scenarios.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.trai.ch/scenarios/internal/adapters/detector"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
	"go.trai.ch/scenarios/internal/engine/licenses"
	"go.trai.ch/scenarios/internal/engine/scenario"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	store        ports.ManifestStore
	packages     ports.PackageManager
	materializer *scenario.Materializer
	installer    *scenario.Installer
	licenses     *licenses.Updater
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.ManifestStore,
	packages ports.PackageManager,
	materializer *scenario.Materializer,
	installer *scenario.Installer,
	updater *licenses.Updater,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		store:        store,
		packages:     packages,
		materializer: materializer,
		installer:    installer,
		licenses:     updater,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects package-manager output meant for the user.
// This is primarily used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// LogOptions configures diagnostics output.
type LogOptions struct {
	Verbose bool
	JSON    bool
}

// ConfigureLogging applies opts to the logger when it supports them.
func (a *App) ConfigureLogging(opts LogOptions) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.JSON)
	}
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(opts.Verbose)
	}
}

// UpdateScenarios regenerates every scenario declared by the project in dir.
func (a *App) UpdateScenarios(ctx context.Context, dir string) error {
	settings, err := a.load(dir)
	if err != nil {
		return err
	}
	return a.materializer.UpdateAll(ctx, settings)
}

// CreateScenario regenerates the single named scenario of the project in dir.
func (a *App) CreateScenario(ctx context.Context, dir, name string) error {
	settings, err := a.load(dir)
	if err != nil {
		return err
	}
	return a.materializer.Create(ctx, settings, name)
}

// InstallOptions configuration for the InstallScenario method.
type InstallOptions struct {
	Scenario   string
	Strategy   string
	OutputMode string
}

// InstallScenario installs a generated scenario and returns the package manager's exit code.
func (a *App) InstallScenario(ctx context.Context, dir string, opts InstallOptions) (int, error) {
	settings, err := a.load(dir)
	if err != nil {
		return 1, err
	}

	run := scenario.InstallOptions{
		Scenario: opts.Scenario,
		Strategy: opts.Strategy,
		Report:   a.stdout,
	}
	if detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode) == detector.ModeInteractive {
		run.Stream = a.stdout
	}

	return a.installer.Install(ctx, settings, run)
}

// UpdateLockOptions configuration for the UpdateLock method.
type UpdateLockOptions struct {
	Packages            []string
	DryRun              bool
	NoDev               bool
	WithDependencies    bool
	WithAllDependencies bool
	IgnorePlatformReqs  bool
	PreferStable        bool
	PreferLowest        bool
	// RootReqs limits the update to the packages the project requires directly.
	RootReqs bool
}

// UpdateLock re-resolves the project's lock without installing anything and
// returns the package manager's exit code.
func (a *App) UpdateLock(ctx context.Context, dir string, opts UpdateLockOptions) (int, error) {
	settings, err := a.load(dir)
	if err != nil {
		return 1, err
	}

	packages := opts.Packages
	if opts.RootReqs {
		manifest, err := a.store.Read(settings.ManifestPath())
		if err != nil {
			return 1, err
		}
		packages = restrictToRoot(packages, rootRequirements(manifest, opts.NoDev))
	}

	res, err := a.packages.ResolveLock(ctx, settings.ProjectDir, domain.LockOptions{
		Packages:            packages,
		DryRun:              opts.DryRun,
		NoDev:               opts.NoDev,
		WithDependencies:    opts.WithDependencies,
		WithAllDependencies: opts.WithAllDependencies,
		IgnorePlatformReqs:  opts.IgnorePlatformReqs,
		PreferStable:        opts.PreferStable,
		PreferLowest:        opts.PreferLowest,
	})
	if err != nil {
		return 1, err
	}

	if res.Failed() {
		if out := strings.TrimSpace(res.Output); out != "" {
			a.logger.Warn(out)
		}
		return res.ExitCode, nil
	}

	_, _ = io.WriteString(a.stdout, res.Output)
	return 0, nil
}

// DependencyLicenses refreshes the dependency table in the project's license file.
func (a *App) DependencyLicenses(ctx context.Context, dir string) error {
	settings, err := a.load(dir)
	if err != nil {
		return err
	}

	updated, err := a.licenses.Update(ctx, settings)
	if err != nil {
		return err
	}
	if updated {
		a.logger.Info("Updated dependency licenses.")
	}
	return nil
}

// load resolves the settings for dir and points the package manager at the configured binary.
func (a *App) load(dir string) (*domain.Settings, error) {
	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if pm, ok := a.packages.(interface{ SetBinary(string) }); ok {
		pm.SetBinary(settings.Composer)
	}
	a.logger.Debug(fmt.Sprintf("Project %s (%s)", settings.ProjectDir, settings.ManifestFile))
	return settings, nil
}

// rootRequirements lists the packages the manifest requires directly.
func rootRequirements(manifest *domain.Object, noDev bool) []string {
	sections := []string{domain.KeyRequire}
	if !noDev {
		sections = append(sections, domain.KeyRequireDev)
	}

	var names []string
	for _, section := range sections {
		if reqs, ok := manifest.Object(section); ok {
			names = append(names, reqs.Keys()...)
		}
	}
	return names
}

// restrictToRoot keeps the requested packages that are root requirements, in
// request order. Without a request every root requirement is selected.
func restrictToRoot(requested, root []string) []string {
	if len(requested) == 0 {
		return root
	}
	var out []string
	for _, pkg := range requested {
		if slices.Contains(root, pkg) {
			out = append(out, pkg)
		}
	}
	return out
}
