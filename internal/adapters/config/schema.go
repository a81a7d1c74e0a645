package config

// Settingsfile represents the structure of the optional .scenarios.yaml file.
type Settingsfile struct {
	Composer    string `yaml:"composer"`
	LockDir     string `yaml:"lock-dir"`
	LicenseFile string `yaml:"license-file"`
}

// environment holds the settings read from process environment variables.
type environment struct {
	ComposerHome   string `env:"COMPOSER_HOME"`
	ManifestFile   string `env:"COMPOSER"`
	ComposerBinary string `env:"COMPOSER_BINARY"`
	CI             string `env:"CI"`
}
