package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scenarios/internal/core/domain"
)

func TestScenarioDir(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "project")

	assert.Equal(t, projectDir, domain.ScenarioDir(projectDir, "default"))
	assert.Equal(t, projectDir+"/.scenarios.lock/foo", domain.ScenarioDir(projectDir, "foo"))
	assert.Equal(t, projectDir+"/.custom/foo", domain.ScenarioDirIn(projectDir, ".custom", "foo"))
}

func TestLockFileName(t *testing.T) {
	assert.Equal(t, "composer.lock", domain.LockFileName("composer.json"))
	assert.Equal(t, "other.lock", domain.LockFileName("/tmp/other.json"))
	assert.Equal(t, "manifest.lock", domain.LockFileName("manifest"))
}

func scenarioManifest() *domain.Object {
	semver := domain.NewObject()
	req := domain.NewObject()
	req.Set("composer/semver", "1.0.0")
	semver.Set("require", req)

	scenarios := domain.NewObject()
	scenarios.Set("semver10", semver)
	scenarios.Set("default", []any{})

	extra := domain.NewObject()
	extra.Set("scenarios", scenarios)

	m := domain.NewObject()
	m.Set("extra", extra)
	return m
}

func TestScenarios_DeclarationOrder(t *testing.T) {
	got := domain.Scenarios(scenarioManifest())

	require.Len(t, got, 2)
	assert.Equal(t, "semver10", got[0].Name)
	assert.Equal(t, "default", got[1].Name)
	assert.Equal(t, 0, got[1].Definition.Len(), "non-object definitions become empty")
}

func TestScenarios_None(t *testing.T) {
	assert.Empty(t, domain.Scenarios(domain.NewObject()))
}

func TestFindScenario(t *testing.T) {
	s, err := domain.FindScenario(scenarioManifest(), "semver10")
	require.NoError(t, err)
	assert.Equal(t, "semver10", s.Name)

	_, err = domain.FindScenario(scenarioManifest(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrScenarioNotFound))
}

func TestValidateScenarioName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"semver10", true},
		{"default", true},
		{"php8.1", true},
		{"..hidden", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../../escaped", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateScenarioName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
		})
	}
}

func TestCoerceOption(t *testing.T) {
	assert.Equal(t, true, domain.CoerceOption("true"))
	assert.Equal(t, false, domain.CoerceOption("false"))
	assert.Equal(t, "yes", domain.CoerceOption("yes"))
	assert.Equal(t, true, domain.CoerceOption(true))
}

func TestParseScenarioOptions(t *testing.T) {
	t.Run("defaults to creating a lockfile", func(t *testing.T) {
		opts, err := domain.ParseScenarioOptions(domain.NewObject())
		require.NoError(t, err)
		assert.True(t, opts.CreateLockfile)
	})

	t.Run("string false disables the lockfile", func(t *testing.T) {
		o := domain.NewObject()
		o.Set("create-lockfile", "false")
		opts, err := domain.ParseScenarioOptions(o)
		require.NoError(t, err)
		assert.False(t, opts.CreateLockfile)
	})

	t.Run("unknown options pass through", func(t *testing.T) {
		o := domain.NewObject()
		o.Set("custom", "value")
		o.Set("flag", "true")
		opts, err := domain.ParseScenarioOptions(o)
		require.NoError(t, err)
		assert.Equal(t, "value", opts.Extra["custom"])
		assert.Equal(t, true, opts.Extra["flag"])
	})

	t.Run("non boolean create-lockfile is rejected", func(t *testing.T) {
		o := domain.NewObject()
		o.Set("create-lockfile", "sometimes")
		_, err := domain.ParseScenarioOptions(o)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidScenarioOption))
	})
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    domain.InstallCommand
		wantErr bool
	}{
		{name: "highest", want: domain.InstallCommand{SubCommand: "update"}},
		{name: "lowest", want: domain.InstallCommand{SubCommand: "update", Flags: []string{"--prefer-lowest"}}},
		{name: "default", want: domain.InstallCommand{SubCommand: "install"}},
		{name: "install", want: domain.InstallCommand{SubCommand: "install"}},
		{name: "lock", want: domain.InstallCommand{SubCommand: "install"}},
		{name: "newest", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseStrategy(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidStrategy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToolEnv_Environ(t *testing.T) {
	assert.Nil(t, domain.ToolEnv{}.Environ())

	env := domain.ToolEnv{Home: "/p", CacheDir: "/home/u/.composer/cache"}.Environ()
	assert.Equal(t, []string{
		"COMPOSER_HOME=/p",
		"COMPOSER_CACHE_DIR=/home/u/.composer/cache",
		"COMPOSER_HTACCESS_PROTECT=0",
	}, env)
}

func TestVendorDir(t *testing.T) {
	assert.Equal(t, "vendor", domain.VendorDir(domain.NewObject()))

	cfg := domain.NewObject()
	cfg.Set("vendor-dir", "lib/vendor")
	m := domain.NewObject()
	m.Set("config", cfg)
	assert.Equal(t, "lib/vendor", domain.VendorDir(m))
}
