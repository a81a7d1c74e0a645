package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scenarios/internal/adapters/config"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, environ ...string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	loader := config.NewLoader(mockLogger)
	loader.Environ = func() []string { return environ }
	return loader
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func TestLoader_Load_Defaults(t *testing.T) {
	root := t.TempDir()

	settings, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, settings.ProjectDir)
	assert.Equal(t, "composer", settings.Composer)
	assert.Equal(t, "composer.json", settings.ManifestFile)
	assert.Equal(t, ".scenarios.lock", settings.LockDirName)
	assert.Equal(t, "LICENSE", settings.LicenseFile)
	assert.Equal(t, filepath.Join(xdg.Home, ".composer"), settings.ComposerHome)
	assert.False(t, settings.CI)
	assert.Equal(t, filepath.Join(root, "composer.json"), settings.ManifestPath())
	assert.Equal(t, filepath.Join(root, ".scenarios.lock", "php8"), settings.ScenarioDir("php8"))
}

func TestLoader_Load_RelativeCwd(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	settings, err := newLoader(t).Load(".")
	require.NoError(t, err)

	want, err := filepath.Abs(".")
	require.NoError(t, err)
	assert.Equal(t, want, settings.ProjectDir)
}

func TestLoader_Load_Environment(t *testing.T) {
	root := t.TempDir()

	settings, err := newLoader(t,
		"COMPOSER_HOME=/tmp/composer-home",
		"COMPOSER=project.json",
		"COMPOSER_BINARY=/usr/local/bin/composer2",
		"CI=true",
	).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/composer-home", settings.ComposerHome)
	assert.Equal(t, "/tmp/composer-home/cache", settings.CacheDir())
	assert.Equal(t, "project.json", settings.ManifestFile)
	assert.Equal(t, "/usr/local/bin/composer2", settings.Composer)
	assert.True(t, settings.CI)
}

func TestLoader_Load_SettingsFile(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.SettingsFileName, `
composer: ./bin/composer
lock-dir: .matrix
license-file: LICENSE.txt
`)

	settings, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "./bin/composer", settings.Composer)
	assert.Equal(t, ".matrix", settings.LockDirName)
	assert.Equal(t, "LICENSE.txt", settings.LicenseFile)
	assert.Equal(t, filepath.Join(root, ".matrix", "php8"), settings.ScenarioDir("php8"))
}

func TestLoader_Load_EnvironmentOverridesSettingsFile(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.SettingsFileName, "composer: ./bin/composer\n")

	settings, err := newLoader(t, "COMPOSER_BINARY=composer-beta").Load(root)
	require.NoError(t, err)
	assert.Equal(t, "composer-beta", settings.Composer)
}

func TestLoader_Load_InvalidSettingsFile(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.SettingsFileName, "composer: [unterminated\n")

	_, err := newLoader(t).Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}
