package domain

import "go.trai.ch/zerr"

var (
	// ErrScenarioNotFound is returned when a scenario name has no definition or no directory.
	ErrScenarioNotFound = zerr.New("scenario not found")

	// ErrInvalidStrategy is returned when a dependency strategy is not one of the known values.
	ErrInvalidStrategy = zerr.New(
		"invalid dependency strategy, expected 'install', 'lock', 'default', 'highest' or 'lowest'",
	)

	// ErrInvalidScenarioOption is returned when a typed scenario option has an unusable value.
	ErrInvalidScenarioOption = zerr.New("invalid scenario option")

	// ErrManifestNotFound is returned when the project manifest does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest is not a valid JSON object.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestWriteFailed is returned when a generated manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrScenarioDirCreateFailed is returned when a scenario directory cannot be created.
	ErrScenarioDirCreateFailed = zerr.New("failed to create scenario directory")

	// ErrIgnoreFileWriteFailed is returned when the ignore-rules file cannot be written.
	ErrIgnoreFileWriteFailed = zerr.New("failed to write ignore file")

	// ErrCommandStartFailed is returned when an external command cannot be started at all.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCommandFailed is returned when an external command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrLockGenerationFailed is returned when the lock for a scenario cannot be generated.
	ErrLockGenerationFailed = zerr.New("failed to generate scenario lock")

	// ErrScriptFailed is returned when a manifest script exits with a non-zero status.
	ErrScriptFailed = zerr.New("script failed")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrEnvParseFailed is returned when environment settings cannot be parsed.
	ErrEnvParseFailed = zerr.New("failed to parse environment settings")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrLicenseUpdateFailed is returned when the license file cannot be rewritten.
	ErrLicenseUpdateFailed = zerr.New("failed to update license file")
)
