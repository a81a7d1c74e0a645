package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// KeyRequire is the manifest section listing runtime requirements.
	KeyRequire = "require"
	// KeyRequireDev is the manifest section listing development requirements.
	KeyRequireDev = "require-dev"
	// KeyAutoload is the manifest autoload section.
	KeyAutoload = "autoload"
	// KeyAutoloadDev is the manifest development autoload section.
	KeyAutoloadDev = "autoload-dev"
	// KeyExtra is the manifest extension section.
	KeyExtra = "extra"
	// KeyConfig is the manifest config section.
	KeyConfig = "config"
	// KeyScripts is the manifest scripts section.
	KeyScripts = "scripts"
	// KeyScenarios is the scenario list under extra.
	KeyScenarios = "scenarios"
	// KeyScenarioOptions holds global defaults under extra, and per-scenario options in a definition.
	KeyScenarioOptions = "scenario-options"
	// KeyRemove lists packages removed from require and require-dev.
	KeyRemove = "remove"
	// KeyRemoveDev lists packages removed from require-dev only.
	KeyRemoveDev = "remove-dev"
	// KeyVendorDir is the dependency-root pointer under config.
	KeyVendorDir = "vendor-dir"

	// OptionCreateLockfile controls whether a lock is generated for a scenario.
	OptionCreateLockfile = "create-lockfile"

	// DefineScenariosScript is the manifest script run after all scenarios are materialized.
	DefineScenariosScript = "define-scenarios-cmd"
)

// Scenario is a named entry of extra.scenarios.
type Scenario struct {
	Name       string
	Definition *Object
}

// Scenarios returns the scenario definitions declared in the manifest, in declaration order.
// Definitions that are not objects (e.g. an empty list) are treated as empty.
func Scenarios(manifest *Object) []Scenario {
	defs, ok := manifest.Path(KeyExtra, KeyScenarios)
	if !ok {
		return nil
	}
	out := make([]Scenario, 0, defs.Len())
	for _, name := range defs.Keys() {
		def, ok := defs.Object(name)
		if !ok {
			def = NewObject()
		}
		out = append(out, Scenario{Name: name, Definition: def})
	}
	return out
}

// FindScenario returns the named scenario definition.
func FindScenario(manifest *Object, name string) (Scenario, error) {
	for _, s := range Scenarios(manifest) {
		if s.Name == name {
			return s, nil
		}
	}
	err := zerr.Wrap(ErrScenarioNotFound, fmt.Sprintf("unknown scenario '%s'", name))
	return Scenario{}, zerr.With(err, "scenario", name)
}

// ValidateScenarioName rejects names that cannot be a single directory below
// the lock directory, such as "..", "a/b" or the empty string.
func ValidateScenarioName(name string) error {
	if name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`) {
		return nil
	}
	err := zerr.Wrap(ErrScenarioNotFound, fmt.Sprintf("invalid scenario name '%s'", name))
	return zerr.With(err, "scenario", name)
}

// DefaultScenarioOptions returns the built-in option defaults.
func DefaultScenarioOptions() *Object {
	o := NewObject()
	o.Set(OptionCreateLockfile, true)
	return o
}

// CoerceOption turns the literal strings "true" and "false" into booleans.
// Every other value passes through unchanged.
func CoerceOption(v any) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	default:
		return v
	}
}

// ScenarioOptions is the typed view of a resolved option set.
type ScenarioOptions struct {
	CreateLockfile bool
	// Extra holds options this tool does not interpret.
	Extra map[string]any
}

// ParseScenarioOptions converts a resolved option set into ScenarioOptions.
// create-lockfile must be a boolean (after coercion); unknown options are kept in Extra as-is.
func ParseScenarioOptions(opts *Object) (ScenarioOptions, error) {
	parsed := ScenarioOptions{CreateLockfile: true, Extra: map[string]any{}}
	for _, key := range opts.Keys() {
		v, _ := opts.Get(key)
		v = CoerceOption(v)
		if key != OptionCreateLockfile {
			parsed.Extra[key] = v
			continue
		}
		b, ok := v.(bool)
		if !ok {
			err := zerr.Wrap(ErrInvalidScenarioOption, fmt.Sprintf("option '%s' must be true or false", key))
			err = zerr.With(err, "option", key)
			return ScenarioOptions{}, zerr.With(err, "value", fmt.Sprint(v))
		}
		parsed.CreateLockfile = b
	}
	return parsed, nil
}
