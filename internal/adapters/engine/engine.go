// Package engine adapts third-party CSS minifiers to ports.Engine.
package engine

import (
	"runtime/debug"
	"slices"
	"strings"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/zerr"
)

const unknownVersion = "unknown"

// buildInfo is swapped in tests.
var buildInfo = debug.ReadBuildInfo

// moduleVersion returns the version of the module at path linked into the
// binary, without the leading "v".
func moduleVersion(path string) string {
	info, ok := buildInfo()
	if !ok {
		return unknownVersion
	}
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			dep = dep.Replace
		}
		if dep.Version == "" || dep.Version == "(devel)" {
			return unknownVersion
		}
		return strings.TrimPrefix(dep.Version, "v")
	}
	return unknownVersion
}

var _ ports.EngineRegistry = (*Registry)(nil)

// Registry holds the engines selectable with --engine.
type Registry struct {
	engines map[string]ports.Engine
}

// NewRegistry returns a registry of the given engines keyed by name.
func NewRegistry(engines ...ports.Engine) *Registry {
	r := &Registry{engines: make(map[string]ports.Engine, len(engines))}
	for _, e := range engines {
		r.engines[e.Name()] = e
	}
	return r
}

// Get returns the engine called name.
func (r *Registry) Get(name string) (ports.Engine, error) {
	if name == "" {
		name = domain.DefaultEngine
	}
	e, ok := r.engines[name]
	if !ok {
		err := domain.NewConfigError("unknown engine: " + name)
		return nil, zerr.With(err, "available", strings.Join(r.Names(), ", "))
	}
	return e, nil
}

// Names returns the registered engine names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
