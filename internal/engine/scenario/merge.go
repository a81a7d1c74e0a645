// Package scenario derives, materializes and installs scenario sub-projects.
package scenario

import (
	"slices"

	"go.trai.ch/scenarios/internal/core/domain"
)

// Merge combines the base manifest with a scenario definition.
//
// It returns the merged manifest and the resolved option set: scenario options
// over the manifest's global extra.scenario-options over the built-in defaults.
// Neither input is modified.
func Merge(base, def *domain.Object) (*domain.Object, *domain.Object) {
	overlay := def.Clone()
	if overlay == nil {
		overlay = domain.NewObject()
	}

	remove := overlay.StringSlice(domain.KeyRemove)
	removeDev := overlay.StringSlice(domain.KeyRemoveDev)
	scenarioOpts, _ := overlay.Object(domain.KeyScenarioOptions)
	overlay.Delete(domain.KeyRemove)
	overlay.Delete(domain.KeyRemoveDev)
	overlay.Delete(domain.KeyScenarioOptions)

	working := base.Clone()
	if working == nil {
		working = domain.NewObject()
	}

	var globalOpts *domain.Object
	if extra, ok := working.Object(domain.KeyExtra); ok {
		globalOpts, _ = extra.Object(domain.KeyScenarioOptions)
		extra.Delete(domain.KeyScenarios)
	}

	if require, ok := working.Object(domain.KeyRequire); ok {
		for _, pkg := range remove {
			require.Delete(pkg)
		}
	}
	if requireDev, ok := working.Object(domain.KeyRequireDev); ok {
		for _, pkg := range slices.Concat(remove, removeDev) {
			requireDev.Delete(pkg)
		}
	}

	for _, key := range overlay.Keys() {
		value, _ := overlay.Get(key)
		current, _ := working.Get(key)
		working.Set(key, combine(current, value))
	}
	working.Prune()

	return working, resolveOptions(scenarioOpts, globalOpts)
}

// combine merges an overlay value onto a base value. Two objects are unioned
// with overlay entries first and empty entries dropped; anything else is replaced.
func combine(base, overlay any) any {
	overlayObj, ok := overlay.(*domain.Object)
	if !ok {
		return overlay
	}
	baseObj, ok := base.(*domain.Object)
	if !ok {
		return overlay
	}

	out := overlayObj.Clone()
	for _, k := range baseObj.Keys() {
		if out.Has(k) {
			continue
		}
		v, _ := baseObj.Get(k)
		out.Set(k, domain.CloneValue(v))
	}
	out.Prune()
	return out
}

// resolveOptions layers option sets, highest precedence first, over the defaults.
// String "true"/"false" values are coerced to booleans.
func resolveOptions(layers ...*domain.Object) *domain.Object {
	resolved := domain.NewObject()
	for _, layer := range layers {
		for _, k := range layer.Keys() {
			if resolved.Has(k) {
				continue
			}
			v, _ := layer.Get(k)
			resolved.Set(k, domain.CoerceOption(domain.CloneValue(v)))
		}
	}

	defaults := domain.DefaultScenarioOptions()
	for _, k := range defaults.Keys() {
		if !resolved.Has(k) {
			v, _ := defaults.Get(k)
			resolved.Set(k, v)
		}
	}
	return resolved
}
