package scenario

import (
	"path/filepath"
	"regexp"

	"go.trai.ch/scenarios/internal/core/domain"
)

const (
	keyInstallerPaths = "installer-paths"
	keyPatches        = "patches"
	keyPatchesFile    = "patches-file"
	keyURL            = "url"
)

// namespaceRoots are autoload sections mapping a namespace to one or more paths.
var namespaceRoots = []string{"psr-4", "psr-0"}

// pathLists are autoload sections holding a plain list of paths.
var pathLists = []string{"classmap", "files", "exclude-from-classmap"}

// remoteLocation matches locations that carry a URL scheme, e.g. https:// or file://.
var remoteLocation = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Rewrite returns a copy of manifest with every project-relative path placed
// behind prefix, the relative path from the scenario directory back to the
// project root. Absolute paths and remote locations are kept as they are.
// It is meant to run once on a freshly merged manifest.
func Rewrite(manifest *domain.Object, prefix string) *domain.Object {
	out := manifest.Clone()
	if out == nil {
		return domain.NewObject()
	}
	r := rewriter{prefix: prefix}

	for _, section := range []string{domain.KeyAutoload, domain.KeyAutoloadDev} {
		if autoload, ok := out.Object(section); ok {
			r.rewriteAutoload(autoload)
		}
	}

	if extra, ok := out.Object(domain.KeyExtra); ok {
		if paths, ok := extra.Object(keyInstallerPaths); ok {
			extra.Set(keyInstallerPaths, r.rewriteInstallerPaths(paths))
		}
		if patches, ok := extra.Object(keyPatches); ok {
			r.rewritePatches(patches)
		}
		if file, ok := extra.Get(keyPatchesFile); ok {
			if s, ok := file.(string); ok {
				extra.Set(keyPatchesFile, r.relocateLocation(s))
			}
		}
	}

	return out
}

type rewriter struct {
	prefix string
}

func (r rewriter) relocate(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return r.prefix + path
}

func (r rewriter) relocateLocation(location string) string {
	if remoteLocation.MatchString(location) {
		return location
	}
	return r.relocate(location)
}

// relocateAll prefixes a path or every string in a list of paths.
func (r rewriter) relocateAll(v any) any {
	switch t := v.(type) {
	case string:
		return r.relocate(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = r.relocateAll(item)
		}
		return out
	default:
		return v
	}
}

func (r rewriter) rewriteAutoload(autoload *domain.Object) {
	for _, key := range namespaceRoots {
		roots, ok := autoload.Object(key)
		if !ok {
			continue
		}
		for _, ns := range roots.Keys() {
			v, _ := roots.Get(ns)
			roots.Set(ns, r.relocateAll(v))
		}
	}

	for _, key := range pathLists {
		if v, ok := autoload.Get(key); ok {
			autoload.Set(key, r.relocateAll(v))
		}
	}
}

// rewriteInstallerPaths prefixes every target path key; rule lists are copied unchanged.
func (r rewriter) rewriteInstallerPaths(paths *domain.Object) *domain.Object {
	out := domain.NewObject()
	for _, path := range paths.Keys() {
		rules, _ := paths.Get(path)
		out.Set(r.relocate(path), rules)
	}
	return out
}

// rewritePatches handles {package: {description: location}} and the
// {package: [{description, url}]} form, relocating local locations only.
func (r rewriter) rewritePatches(patches *domain.Object) {
	for _, pkg := range patches.Keys() {
		entries, _ := patches.Get(pkg)
		switch t := entries.(type) {
		case *domain.Object:
			for _, desc := range t.Keys() {
				v, _ := t.Get(desc)
				t.Set(desc, r.rewritePatchEntry(v))
			}
		case []any:
			for i, v := range t {
				t[i] = r.rewritePatchEntry(v)
			}
		}
	}
}

func (r rewriter) rewritePatchEntry(v any) any {
	switch t := v.(type) {
	case string:
		return r.relocateLocation(t)
	case *domain.Object:
		if url, ok := t.Get(keyURL); ok {
			if s, ok := url.(string); ok {
				t.Set(keyURL, r.relocateLocation(s))
			}
		}
		return t
	default:
		return v
	}
}
