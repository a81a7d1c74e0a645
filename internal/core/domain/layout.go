package domain

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultScenario is the scenario that lives in the project root itself.
	DefaultScenario = "default"

	// LockDirName is the directory under the project root holding scenario directories.
	LockDirName = ".scenarios.lock"

	// ManifestFileName is the default manifest file name.
	ManifestFileName = "composer.json"

	// IgnoreFileName is the ignore-rules file written into every scenario directory.
	IgnoreFileName = ".gitignore"

	// VendorDirName is the default dependency root.
	VendorDirName = "vendor"

	// InstalledStateFile is the installed-package bookkeeping file, relative to the vendor dir.
	InstalledStateFile = "composer/installed.json"

	// LicenseFileName is the default license file updated by dependency-licenses.
	LicenseFileName = "LICENSE"

	// SettingsFileName is the optional per-project settings file.
	SettingsFileName = ".scenarios.yaml"

	// ParentPrefix leads from a scenario directory in the default lock directory
	// back to the project root.
	ParentPrefix = "../../"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ScenarioDir returns the directory for the named scenario.
// The default scenario maps to projectDir itself, every other name to
// projectDir/.scenarios.lock/<name>.
func ScenarioDir(projectDir, name string) string {
	return ScenarioDirIn(projectDir, LockDirName, name)
}

// ScenarioDirIn is ScenarioDir with a custom lock directory name.
func ScenarioDirIn(projectDir, lockDir, name string) string {
	if name == DefaultScenario {
		return projectDir
	}
	if lockDir == "" {
		lockDir = LockDirName
	}
	return filepath.Join(projectDir, lockDir, name)
}

// LockFileName derives the lock file name from a manifest file name,
// e.g. composer.json -> composer.lock.
func LockFileName(manifestFile string) string {
	base := filepath.Base(manifestFile)
	if ext := filepath.Ext(base); ext == ".json" {
		return strings.TrimSuffix(base, ext) + ".lock"
	}
	return base + ".lock"
}
