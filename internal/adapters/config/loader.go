// Package config resolves the runtime settings of a project.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader from defaults, an optional settings file and the environment.
type Loader struct {
	Logger ports.Logger
	// Environ returns the process environment. Nil means os.Environ.
	Environ func() []string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the settings for the project rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	settings := &domain.Settings{
		ProjectDir:   root,
		Composer:     "composer",
		ManifestFile: domain.ManifestFileName,
		LockDirName:  domain.LockDirName,
		LicenseFile:  domain.LicenseFileName,
	}

	if err := l.applySettingsFile(settings); err != nil {
		return nil, err
	}

	if err := l.applyEnvironment(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func (l *Loader) applySettingsFile(settings *domain.Settings) error {
	path := filepath.Join(settings.ProjectDir, domain.SettingsFileName)

	var file Settingsfile
	found, err := readAndUnmarshalYAML(path, &file)
	if err != nil || !found {
		return err
	}

	l.Logger.Debug("Using settings from " + path)

	if file.Composer != "" {
		settings.Composer = file.Composer
	}
	if file.LockDir != "" {
		settings.LockDirName = file.LockDir
	}
	if file.LicenseFile != "" {
		settings.LicenseFile = file.LicenseFile
	}
	return nil
}

func (l *Loader) applyEnvironment(settings *domain.Settings) error {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	var e environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: env.ToMap(environ())}); err != nil {
		return zerr.Wrap(err, domain.ErrEnvParseFailed.Error())
	}

	settings.ComposerHome = e.ComposerHome
	if settings.ComposerHome == "" {
		settings.ComposerHome = filepath.Join(xdg.Home, ".composer")
	}
	if e.ManifestFile != "" {
		settings.ManifestFile = e.ManifestFile
	}
	if e.ComposerBinary != "" {
		settings.Composer = e.ComposerBinary
	}
	settings.CI = e.CI != ""
	return nil
}

// readAndUnmarshalYAML decodes the file at path into target. A missing file is reported as not found.
func readAndUnmarshalYAML[T any](path string, target *T) (bool, error) {
	// #nosec G304 -- path is built from the project root
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return true, nil
}
