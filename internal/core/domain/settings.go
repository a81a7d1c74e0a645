package domain

import "path/filepath"

// Settings is the resolved runtime configuration for one project.
type Settings struct {
	// ProjectDir is the absolute project root.
	ProjectDir string
	// Composer is the package-manager executable.
	Composer string
	// ComposerHome is the package-manager home used for its shared cache.
	ComposerHome string
	// ManifestFile is the manifest file name inside ProjectDir.
	ManifestFile string
	// LockDirName is the directory holding scenario directories.
	LockDirName string
	// LicenseFile is the license file name inside ProjectDir.
	LicenseFile string
	// CI is set when running under continuous integration.
	CI bool
}

// ManifestPath returns the absolute path of the project manifest.
func (s *Settings) ManifestPath() string {
	return filepath.Join(s.ProjectDir, s.ManifestFile)
}

// ScenarioDir returns the directory of the named scenario for this project.
func (s *Settings) ScenarioDir(name string) string {
	return ScenarioDirIn(s.ProjectDir, s.LockDirName, name)
}

// CacheDir returns the shared package-manager cache directory.
func (s *Settings) CacheDir() string {
	if s.ComposerHome == "" {
		return ""
	}
	return filepath.Join(s.ComposerHome, "cache")
}

// LockEnv returns the tool environment used for scenario lock generation.
func (s *Settings) LockEnv() ToolEnv {
	return ToolEnv{
		Home:            s.ProjectDir,
		CacheDir:        s.CacheDir(),
		HtaccessProtect: false,
	}
}

// VendorDir returns the dependency root declared by manifest, or the default.
func VendorDir(manifest *Object) string {
	if cfg, ok := manifest.Object(KeyConfig); ok {
		if v, ok := cfg.Get(KeyVendorDir); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return VendorDirName
}

// StateSnapshot is the captured content of the installed-state file.
// The zero value means the file was absent.
type StateSnapshot struct {
	Path    string
	Content []byte
	Digest  uint64
}

// Empty reports whether there is nothing to restore.
func (s StateSnapshot) Empty() bool {
	return len(s.Content) == 0
}
