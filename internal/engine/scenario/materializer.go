package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
	"go.trai.ch/zerr"
)

// TracerName is the instrumentation name of the scenario engine.
const TracerName = "go.trai.ch/scenarios/engine/scenario"

// Materializer writes scenario directories from the project manifest.
type Materializer struct {
	store    ports.ManifestStore
	packages ports.PackageManager
	guard    ports.StateGuard
	logger   ports.Logger
	tracer   trace.Tracer
}

// NewMaterializer creates a new Materializer.
func NewMaterializer(
	store ports.ManifestStore,
	packages ports.PackageManager,
	guard ports.StateGuard,
	logger ports.Logger,
) *Materializer {
	return &Materializer{
		store:    store,
		packages: packages,
		guard:    guard,
		logger:   logger,
		tracer:   otel.Tracer(TracerName),
	}
}

// WithTracer replaces the tracer taken from the global provider.
func (m *Materializer) WithTracer(tracer trace.Tracer) *Materializer {
	m.tracer = tracer
	return m
}

// UpdateAll materializes every declared scenario in declaration order and then
// runs the manifest's define-scenarios-cmd script, if any.
func (m *Materializer) UpdateAll(ctx context.Context, settings *domain.Settings) error {
	manifest, err := m.store.Read(settings.ManifestPath())
	if err != nil {
		return err
	}

	scenarios := domain.Scenarios(manifest)
	if len(scenarios) == 0 {
		m.logger.Info("No scenarios in 'extra' section.")
	} else if err := m.batch(ctx, settings, manifest, scenarios); err != nil {
		return err
	}

	return m.defineScenarios(ctx, settings, manifest)
}

// Create materializes exactly one named scenario.
func (m *Materializer) Create(ctx context.Context, settings *domain.Settings, name string) error {
	manifest, err := m.store.Read(settings.ManifestPath())
	if err != nil {
		return err
	}

	sc, err := domain.FindScenario(manifest, name)
	if err != nil {
		return err
	}

	return m.batch(ctx, settings, manifest, []domain.Scenario{sc})
}

// batch materializes scenarios in order inside one state-guard bracket.
// The first failure aborts the rest.
func (m *Materializer) batch(
	ctx context.Context,
	settings *domain.Settings,
	manifest *domain.Object,
	scenarios []domain.Scenario,
) error {
	ctx, span := m.tracer.Start(ctx, "scenarios.update",
		trace.WithAttributes(attribute.Int("scenarios.count", len(scenarios))))
	defer span.End()

	err := withStateGuard(m.guard, settings, manifest, func() error {
		for _, sc := range scenarios {
			if err := m.Materialize(ctx, settings, manifest, sc); err != nil {
				return err
			}
		}
		return nil
	})
	return recordError(span, err)
}

// Materialize derives one scenario from manifest and writes its directory:
// manifest, dependency-root pointer, optional lock and ignore rules.
func (m *Materializer) Materialize(
	ctx context.Context,
	settings *domain.Settings,
	manifest *domain.Object,
	sc domain.Scenario,
) error {
	ctx, span := m.tracer.Start(ctx, "scenario.materialize",
		trace.WithAttributes(attribute.String("scenario", sc.Name)))
	defer span.End()

	if err := domain.ValidateScenarioName(sc.Name); err != nil {
		return recordError(span, err)
	}

	m.logger.Info(fmt.Sprintf("Create scenario '%s'.", sc.Name))

	if sc.Name == domain.DefaultScenario {
		if sc.Definition.Len() > 0 {
			m.logger.Warn("Scenario 'default' is the project itself; its overrides are ignored.")
		}
		return nil
	}

	return recordError(span, m.materialize(ctx, settings, manifest, sc))
}

func (m *Materializer) materialize(
	ctx context.Context,
	settings *domain.Settings,
	manifest *domain.Object,
	sc domain.Scenario,
) error {
	merged, rawOpts := Merge(manifest, sc.Definition)
	opts, err := domain.ParseScenarioOptions(rawOpts)
	if err != nil {
		return zerr.With(err, "scenario", sc.Name)
	}

	dir := settings.ScenarioDir(sc.Name)
	prefix, err := projectRootFrom(settings.ProjectDir, dir)
	if err != nil {
		return zerr.With(err, "scenario", sc.Name)
	}
	scenarioManifest := Rewrite(merged, prefix)

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScenarioDirCreateFailed.Error()), "dir", dir)
	}

	manifestPath := filepath.Join(dir, settings.ManifestFile)
	if err := m.store.Write(manifestPath, scenarioManifest); err != nil {
		return err
	}

	vendorDir, err := relativeVendorDir(settings.ProjectDir, dir, domain.VendorDir(manifest))
	if err != nil {
		return zerr.With(err, "scenario", sc.Name)
	}
	if err := m.store.SetConfig(manifestPath, domain.KeyVendorDir, vendorDir); err != nil {
		return err
	}

	ignored := []string{domain.VendorDirName}
	if opts.CreateLockfile {
		res, err := m.packages.ResolveLock(ctx, dir, domain.LockOptions{Env: settings.LockEnv()})
		if err != nil {
			return zerr.With(err, "scenario", sc.Name)
		}
		if res.Failed() {
			msg := fmt.Sprintf("lock generation failed for scenario '%s'", sc.Name)
			return commandError(domain.ErrLockGenerationFailed, msg, res)
		}
	} else {
		ignored = append(ignored, domain.LockFileName(settings.ManifestFile))
	}

	ignorePath := filepath.Join(dir, domain.IgnoreFileName)
	if err := os.WriteFile(ignorePath, []byte(strings.Join(ignored, "\n")), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIgnoreFileWriteFailed.Error()), "path", ignorePath)
	}

	return nil
}

// defineScenarios runs the define-scenarios-cmd manifest script when declared.
func (m *Materializer) defineScenarios(ctx context.Context, settings *domain.Settings, manifest *domain.Object) error {
	scripts, ok := manifest.Object(domain.KeyScripts)
	if !ok || !scripts.Has(domain.DefineScenariosScript) {
		return nil
	}

	res, err := m.packages.RunScript(ctx, settings.ProjectDir, domain.DefineScenariosScript)
	if err != nil {
		return err
	}
	if res.Failed() {
		return commandError(domain.ErrScriptFailed, "define-scenarios-cmd failed", res)
	}
	return nil
}

// projectRootFrom is the slash-terminated relative path from a scenario
// directory back to the project root, e.g. "../../".
func projectRootFrom(projectDir, scenarioDir string) (string, error) {
	rel, err := filepath.Rel(scenarioDir, projectDir)
	if err != nil {
		return "", zerr.Wrap(err, "cannot relate scenario directory to project directory")
	}
	return filepath.ToSlash(rel) + "/", nil
}

// relativeVendorDir points from a scenario directory to the project's dependency root.
func relativeVendorDir(projectDir, scenarioDir, vendorDir string) (string, error) {
	if filepath.IsAbs(vendorDir) {
		return filepath.ToSlash(vendorDir), nil
	}
	rel, err := filepath.Rel(scenarioDir, filepath.Join(projectDir, vendorDir))
	if err != nil {
		return "", zerr.Wrap(err, "cannot relate scenario directory to vendor directory")
	}
	return filepath.ToSlash(rel), nil
}
