package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/plugin"
)

// ModulePrefix is the conventional name prefix tried when a capability has
// no registered provider: the capability "loopback" maps to the module
// "botgrid-loopback".
const ModulePrefix = "botgrid-"

// ErrModuleNotFound reports that a plugin module could not be located, even
// after the on-demand loading attempt. Callers treat this as fatal: a robot
// cannot function without its plugins.
var ErrModuleNotFound = errors.New("module not found")

// Loader resolves a module name to its plugin bundle. The embedding
// application supplies one wired to its compiled-in modules; resolution is a
// pure lookup with no filesystem search.
type Loader func(moduleName string) (*plugin.Bundle, error)

// Record is the bookkeeping entry for one loaded module.
type Record struct {
	Module       string
	Bundle       *plugin.Bundle
	Adaptors     []string
	Drivers      []string
	Dependencies []string
}

// Registry maps module names to records and resolves capability names to
// the bundles providing them. Records are scanned in registration order.
type Registry struct {
	loader  Loader
	order   []string
	records map[string]*Record
}

// New creates an empty registry backed by the given loader. A nil loader is
// allowed; Register then only finds bundles added via RegisterBundle.
func New(loader Loader) *Registry {
	return &Registry{
		loader:  loader,
		records: make(map[string]*Record),
	}
}

// Register loads the named module once and returns its bundle. A second call
// for the same name is a no-op returning the cached bundle. Declared
// dependencies are registered recursively. Returns ErrModuleNotFound when
// the loader cannot produce the module.
func (r *Registry) Register(ctx context.Context, name string) (*plugin.Bundle, error) {
	if rec, ok := r.records[name]; ok {
		return rec.Bundle, nil
	}
	if r.loader == nil {
		return nil, fmt.Errorf("registering %q: %w", name, ErrModuleNotFound)
	}
	bundle, err := r.loader(name)
	if err != nil || bundle == nil {
		return nil, fmt.Errorf("registering %q: %w", name, ErrModuleNotFound)
	}
	r.add(name, bundle)
	ctxlog.FromContext(ctx).Debug("Module registered.",
		"module", name,
		"adaptors", bundle.Adaptors,
		"drivers", bundle.Drivers,
		"dependencies", bundle.Dependencies)

	for _, dep := range bundle.Dependencies {
		if _, err := r.Register(ctx, dep); err != nil {
			return nil, fmt.Errorf("dependency of %q: %w", name, err)
		}
	}
	return bundle, nil
}

// RegisterBundle records a bundle directly under the given module name,
// bypassing the loader. Registering an already-known name is a no-op
// returning the cached bundle. Dependencies are not chased; callers that
// need recursive registration go through Register.
func (r *Registry) RegisterBundle(name string, bundle *plugin.Bundle) *plugin.Bundle {
	if rec, ok := r.records[name]; ok {
		return rec.Bundle
	}
	r.add(name, bundle)
	return bundle
}

func (r *Registry) add(name string, bundle *plugin.Bundle) {
	r.records[name] = &Record{
		Module:       name,
		Bundle:       bundle,
		Adaptors:     slices.Clone(bundle.Adaptors),
		Drivers:      slices.Clone(bundle.Drivers),
		Dependencies: slices.Clone(bundle.Dependencies),
	}
	r.order = append(r.order, name)
}

// FindByAdaptor returns the bundle of the first registered module whose
// adaptor capability list contains the given name, or nil. A name without a
// trailing "s" is pluralized before matching.
func (r *Registry) FindByAdaptor(capability string) *plugin.Bundle {
	return r.findBy(capability, func(rec *Record) []string { return rec.Adaptors })
}

// FindByDriver is FindByAdaptor over driver capability lists.
func (r *Registry) FindByDriver(capability string) *plugin.Bundle {
	return r.findBy(capability, func(rec *Record) []string { return rec.Drivers })
}

// FindByModule returns the bundle registered under the exact module name, or
// nil.
func (r *Registry) FindByModule(name string) *plugin.Bundle {
	if rec, ok := r.records[name]; ok {
		return rec.Bundle
	}
	return nil
}

// Modules returns the registered module names in registration order.
func (r *Registry) Modules() []string {
	return slices.Clone(r.order)
}

func (r *Registry) findBy(capability string, list func(*Record) []string) *plugin.Bundle {
	capability = pluralize(capability)
	for _, name := range r.order {
		rec := r.records[name]
		if slices.Contains(list(rec), capability) {
			return rec.Bundle
		}
	}
	return nil
}

// pluralize appends "s" unless the name already ends with one. A bare suffix
// check, kept bug-for-bug compatible with the legacy behavior.
func pluralize(name string) string {
	if strings.HasSuffix(name, "s") {
		return name
	}
	return name + "s"
}
