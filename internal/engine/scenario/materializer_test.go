package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/scenarios/internal/adapters/manifest"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports/mocks"
	"go.trai.ch/scenarios/internal/engine/scenario"
	"go.uber.org/mock/gomock"
)

const projectManifest = `{
    "name": "example/project",
    "require": {
        "php": ">=7.1",
        "symfony/console": "^5.0"
    },
    "require-dev": {
        "phpunit/phpunit": "^9.5"
    },
    "autoload": {
        "psr-4": {
            "Example\\Project\\": "src/"
        }
    },
    "extra": {
        "scenarios": {
            "symfony4": {
                "require": {
                    "symfony/console": "^4.4"
                },
                "remove-dev": ["phpunit/phpunit"],
                "scenario-options": {
                    "create-lockfile": "false"
                }
            }
        }
    }
}
`

type materializerFixture struct {
	settings *domain.Settings
	packages *mocks.MockPackageManager
	guard    *mocks.MockStateGuard
	logger   *mocks.MockLogger
	recorder *tracetest.SpanRecorder
	m        *scenario.Materializer
}

func newMaterializerFixture(t *testing.T, manifestJSON string) *materializerFixture {
	t.Helper()
	project := t.TempDir()
	if manifestJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(project, domain.ManifestFileName), []byte(manifestJSON), domain.FilePerm))
	}

	ctrl := gomock.NewController(t)
	f := &materializerFixture{
		settings: &domain.Settings{
			ProjectDir:   project,
			Composer:     "composer",
			ManifestFile: domain.ManifestFileName,
			LockDirName:  domain.LockDirName,
		},
		packages: mocks.NewMockPackageManager(ctrl),
		guard:    mocks.NewMockStateGuard(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		recorder: tracetest.NewSpanRecorder(),
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.recorder))
	f.m = scenario.NewMaterializer(manifest.NewStore(), f.packages, f.guard, f.logger).
		WithTracer(tp.Tracer("test"))
	return f
}

func (f *materializerFixture) expectGuard(vendorDir string) {
	snap := domain.StateSnapshot{Path: "installed.json", Content: []byte("{}"), Digest: 1}
	f.guard.EXPECT().Snapshot(f.settings.ProjectDir, vendorDir).Return(snap)
	f.guard.EXPECT().Restore(snap)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMaterializer_UpdateAll(t *testing.T) {
	f := newMaterializerFixture(t, projectManifest)
	f.expectGuard("vendor")
	f.logger.EXPECT().Info("Create scenario 'symfony4'.")

	require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))

	dir := f.settings.ScenarioDir("symfony4")
	g := goldie.New(t)
	g.Assert(t, "symfony4_manifest", []byte(readFile(t, filepath.Join(dir, domain.ManifestFileName))))
	assert.Equal(t, "vendor\ncomposer.lock", readFile(t, filepath.Join(dir, domain.IgnoreFileName)))
	assert.NoFileExists(t, filepath.Join(dir, "composer.lock"))
}

func TestMaterializer_UpdateAll_GeneratesLock(t *testing.T) {
	f := newMaterializerFixture(t, `{"require": {"a/b": "^1"}, "extra": {"scenarios": {"one": {}, "two": {"require": {"a/b": "^2"}}}}}`)
	f.expectGuard("vendor")

	gomock.InOrder(
		f.logger.EXPECT().Info("Create scenario 'one'."),
		f.packages.EXPECT().
			ResolveLock(gomock.Any(), f.settings.ScenarioDir("one"), domain.LockOptions{
				Env: domain.ToolEnv{Home: f.settings.ProjectDir},
			}).
			Return(domain.CommandResult{ExitCode: 0}, nil),
		f.logger.EXPECT().Info("Create scenario 'two'."),
		f.packages.EXPECT().
			ResolveLock(gomock.Any(), f.settings.ScenarioDir("two"), gomock.Any()).
			Return(domain.CommandResult{ExitCode: 0}, nil),
	)

	require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))

	for _, name := range []string{"one", "two"} {
		dir := f.settings.ScenarioDir(name)
		assert.Equal(t, "vendor", readFile(t, filepath.Join(dir, domain.IgnoreFileName)))

		written, err := manifest.NewStore().Read(filepath.Join(dir, domain.ManifestFileName))
		require.NoError(t, err)
		cfg, ok := written.Object(domain.KeyConfig)
		require.True(t, ok)
		v, _ := cfg.Get(domain.KeyVendorDir)
		assert.Equal(t, "../../vendor", v)
	}
}

func TestMaterializer_UpdateAll_LockFailureAbortsAndRestores(t *testing.T) {
	f := newMaterializerFixture(t, `{"extra": {"scenarios": {"broken": {}, "never": {}}}}`)
	f.expectGuard("vendor")
	f.logger.EXPECT().Info("Create scenario 'broken'.")
	f.packages.EXPECT().
		ResolveLock(gomock.Any(), f.settings.ScenarioDir("broken"), gomock.Any()).
		Return(domain.CommandResult{CommandLine: "composer -n update", ExitCode: 2, Output: "resolution failed\n"}, nil)

	err := f.m.UpdateAll(context.Background(), f.settings)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockGenerationFailed)
	assert.Contains(t, err.Error(), "lock generation failed for scenario 'broken'")
	assert.NoDirExists(t, f.settings.ScenarioDir("never"))
}

func TestMaterializer_UpdateAll_CustomVendorDir(t *testing.T) {
	f := newMaterializerFixture(t, `{"config": {"vendor-dir": "lib/deps"}, "extra": {"scenarios": {"s": {"scenario-options": {"create-lockfile": false}}}}}`)
	f.expectGuard("lib/deps")
	f.logger.EXPECT().Info("Create scenario 's'.")

	require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))

	written, err := manifest.NewStore().Read(filepath.Join(f.settings.ScenarioDir("s"), domain.ManifestFileName))
	require.NoError(t, err)
	cfg, ok := written.Object(domain.KeyConfig)
	require.True(t, ok)
	assert.Equal(t, []string{domain.KeyVendorDir}, cfg.Keys())
	v, _ := cfg.Get(domain.KeyVendorDir)
	assert.Equal(t, "../../lib/deps", v)
}

func TestMaterializer_UpdateAll_NoScenarios(t *testing.T) {
	f := newMaterializerFixture(t, `{"name": "a/b"}`)
	f.logger.EXPECT().Info("No scenarios in 'extra' section.")

	require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))
	assert.NoDirExists(t, filepath.Join(f.settings.ProjectDir, domain.LockDirName))
}

func TestMaterializer_UpdateAll_DefineScenariosScript(t *testing.T) {
	const withScript = `{"scripts": {"define-scenarios-cmd": "echo"}, "extra": {"scenarios": {"s": {"scenario-options": {"create-lockfile": false}}}}}`

	t.Run("runs after scenarios", func(t *testing.T) {
		f := newMaterializerFixture(t, withScript)
		f.expectGuard("vendor")
		gomock.InOrder(
			f.logger.EXPECT().Info("Create scenario 's'."),
			f.packages.EXPECT().
				RunScript(gomock.Any(), f.settings.ProjectDir, domain.DefineScenariosScript).
				Return(domain.CommandResult{}, nil),
		)

		require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))
	})

	t.Run("failure is reported", func(t *testing.T) {
		f := newMaterializerFixture(t, withScript)
		f.expectGuard("vendor")
		f.logger.EXPECT().Info("Create scenario 's'.")
		f.packages.EXPECT().
			RunScript(gomock.Any(), f.settings.ProjectDir, domain.DefineScenariosScript).
			Return(domain.CommandResult{ExitCode: 1, Output: "nope"}, nil)

		err := f.m.UpdateAll(context.Background(), f.settings)
		assert.ErrorIs(t, err, domain.ErrScriptFailed)
	})
}

func TestMaterializer_DefaultScenario(t *testing.T) {
	t.Run("with overrides warns", func(t *testing.T) {
		f := newMaterializerFixture(t, `{"extra": {"scenarios": {"default": {"require": {"x/y": "1"}}}}}`)
		f.expectGuard("vendor")
		f.logger.EXPECT().Info("Create scenario 'default'.")
		f.logger.EXPECT().Warn("Scenario 'default' is the project itself; its overrides are ignored.")

		require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))
		assert.NoFileExists(t, filepath.Join(f.settings.ProjectDir, domain.IgnoreFileName))
	})

	t.Run("empty definition is silent", func(t *testing.T) {
		f := newMaterializerFixture(t, `{"extra": {"scenarios": {"default": []}}}`)
		f.expectGuard("vendor")
		f.logger.EXPECT().Info("Create scenario 'default'.")

		require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))
	})
}

func TestMaterializer_Create(t *testing.T) {
	t.Run("materializes only the named scenario", func(t *testing.T) {
		f := newMaterializerFixture(t, `{"extra": {"scenarios": {"a": {"scenario-options": {"create-lockfile": false}}, "b": {}}}}`)
		f.expectGuard("vendor")
		f.logger.EXPECT().Info("Create scenario 'a'.")

		require.NoError(t, f.m.Create(context.Background(), f.settings, "a"))
		assert.DirExists(t, f.settings.ScenarioDir("a"))
		assert.NoDirExists(t, f.settings.ScenarioDir("b"))
	})

	t.Run("unknown scenario", func(t *testing.T) {
		f := newMaterializerFixture(t, `{"extra": {"scenarios": {"a": {}}}}`)

		err := f.m.Create(context.Background(), f.settings, "zzz")
		assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
	})

	t.Run("invalid option", func(t *testing.T) {
		f := newMaterializerFixture(t, `{"extra": {"scenarios": {"a": {"scenario-options": {"create-lockfile": "maybe"}}}}}`)
		f.expectGuard("vendor")
		f.logger.EXPECT().Info("Create scenario 'a'.")

		err := f.m.Create(context.Background(), f.settings, "a")
		assert.ErrorIs(t, err, domain.ErrInvalidScenarioOption)
	})
}

func TestMaterializer_MissingManifest(t *testing.T) {
	f := newMaterializerFixture(t, "")

	err := f.m.UpdateAll(context.Background(), f.settings)
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestMaterializer_Spans(t *testing.T) {
	f := newMaterializerFixture(t, `{"extra": {"scenarios": {"ok": {"scenario-options": {"create-lockfile": false}}, "bad": {}}}}`)
	f.expectGuard("vendor")
	f.logger.EXPECT().Info("Create scenario 'ok'.")
	f.logger.EXPECT().Info("Create scenario 'bad'.")
	f.packages.EXPECT().
		ResolveLock(gomock.Any(), f.settings.ScenarioDir("bad"), gomock.Any()).
		Return(domain.CommandResult{ExitCode: 1}, nil)

	require.Error(t, f.m.UpdateAll(context.Background(), f.settings))

	spans := f.recorder.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, "scenario.materialize", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "scenario.materialize", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, spans[2].SpanContext().SpanID(), spans[1].Parent().SpanID())

	assert.Equal(t, "scenarios.update", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}

func TestMaterializer_UpdateAll_NestedLockDir(t *testing.T) {
	f := newMaterializerFixture(t, `{"autoload": {"psr-4": {"App\\": "src/"}}, "extra": {"scenarios": {"s": {"scenario-options": {"create-lockfile": false}}}}}`)
	f.settings.LockDirName = "tests/scenarios"
	f.expectGuard("vendor")
	f.logger.EXPECT().Info("Create scenario 's'.")

	require.NoError(t, f.m.UpdateAll(context.Background(), f.settings))

	dir := filepath.Join(f.settings.ProjectDir, "tests", "scenarios", "s")
	written, err := manifest.NewStore().Read(filepath.Join(dir, domain.ManifestFileName))
	require.NoError(t, err)

	roots, ok := written.Path(domain.KeyAutoload, "psr-4")
	require.True(t, ok)
	src, _ := roots.Get(`App\`)
	assert.Equal(t, "../../../src/", src)

	cfg, ok := written.Object(domain.KeyConfig)
	require.True(t, ok)
	v, _ := cfg.Get(domain.KeyVendorDir)
	assert.Equal(t, "../../../vendor", v)
}

func TestMaterializer_UpdateAll_RejectsEscapingName(t *testing.T) {
	f := newMaterializerFixture(t, `{"extra": {"scenarios": {"../../escaped": {"scenario-options": {"create-lockfile": false}}}}}`)
	f.expectGuard("vendor")

	err := f.m.UpdateAll(context.Background(), f.settings)

	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
	assert.Contains(t, err.Error(), "invalid scenario name '../../escaped'")
	assert.NoDirExists(t, filepath.Join(filepath.Dir(f.settings.ProjectDir), "escaped"))
	assert.NoDirExists(t, filepath.Join(f.settings.ProjectDir, domain.LockDirName))
}
