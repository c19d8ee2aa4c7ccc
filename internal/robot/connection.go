package robot

import (
	"context"
	"fmt"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/interrupt"
	"github.com/vk/botgrid/internal/plugin"
	"github.com/vk/botgrid/internal/registry"
)

// Connection binds a robot to one transport instance built by a plugin
// module. The robot owns it; the adaptor only lives as long as the robot.
type Connection struct {
	name       string
	robot      *Robot
	adaptor    plugin.Adaptor
	adaptorCap string
	params     map[string]any
}

// Name returns the connection's name, unique within its robot.
func (c *Connection) Name() string { return c.name }

// Robot returns the owning robot.
func (c *Connection) Robot() *Robot { return c.robot }

// Adaptor returns the plugin transport behind this connection.
func (c *Connection) Adaptor() plugin.Adaptor { return c.adaptor }

// Connect brings the transport up. Spec params are echoed in the log so
// startup output shows exactly what each transport was created with.
func (c *Connection) Connect(ctx context.Context) error {
	ctxlog.FromContext(ctx).Info("Connecting.",
		"robot", c.robot.name,
		"connection", c.name,
		"params", c.params)
	return c.adaptor.Connect(ctx)
}

// Disconnect tears the transport down.
func (c *Connection) Disconnect(ctx context.Context) error {
	ctxlog.FromContext(ctx).Info("Disconnecting.",
		"robot", c.robot.name,
		"connection", c.name)
	return c.adaptor.Disconnect(ctx)
}

// AddConnection builds one transport from its spec and registers it on the
// robot. A name collision is recovered by suffixing, never surfaced as an
// error. A capability that resolves to no module is fatal: the failure is
// logged, a process interrupt is requested, and the error returned.
func (r *Robot) AddConnection(ctx context.Context, spec *config.ConnectionSpec) (*Connection, error) {
	logger := ctxlog.FromContext(ctx)

	bundle, err := r.resolveAdaptorBundle(ctx, spec)
	if err != nil {
		interrupt.Fatal(ctx, "Cannot resolve connection module.",
			"robot", r.name, "connection", spec.Name, "adaptor", spec.Adaptor, "error", err)
		return nil, err
	}
	if bundle.NewAdaptor == nil {
		err := fmt.Errorf("module for adaptor %q provides no adaptor constructor", spec.Adaptor)
		interrupt.Fatal(ctx, "Cannot resolve connection module.",
			"robot", r.name, "connection", spec.Name, "error", err)
		return nil, err
	}

	name, renamed := r.uniqueConnectionName(baseName(spec.Name, spec.Adaptor, "connection"))
	if renamed {
		logger.Warn("Connection name already in use, renaming.",
			"robot", r.name, "requested", spec.Name, "assigned", name)
	}

	adaptor, err := bundle.NewAdaptor(plugin.AdaptorOptions{
		Name:    name,
		Adaptor: spec.Adaptor,
		Params:  spec.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("creating adaptor for connection %q: %w", name, err)
	}
	adaptor.SetName(name)

	conn := &Connection{
		name:       name,
		robot:      r,
		adaptor:    adaptor,
		adaptorCap: baseName(spec.Adaptor, spec.Module),
		params:     spec.Params,
	}
	r.connections[name] = conn
	r.connOrder = append(r.connOrder, name)
	return conn, nil
}

// resolveAdaptorBundle finds the module providing a transport capability: an
// explicit module name is registered directly, otherwise the registry is
// searched, then the conventionally named module is registered on demand and
// the search retried. In stubbed mode the "test" adaptor replaces whatever
// was resolved, once the real resolution has succeeded.
func (r *Robot) resolveAdaptorBundle(ctx context.Context, spec *config.ConnectionSpec) (*plugin.Bundle, error) {
	bundle, err := r.lookupAdaptor(ctx, spec)
	if err != nil {
		return nil, err
	}
	if !r.runtime.Stubbed() {
		return bundle, nil
	}
	if _, err := r.registry.Register(ctx, registry.ModulePrefix+"test"); err != nil {
		return nil, fmt.Errorf("resolving test stub adaptor: %w", err)
	}
	if stub := r.registry.FindByAdaptor("test"); stub != nil {
		return stub, nil
	}
	return nil, fmt.Errorf("resolving test stub adaptor: %w", registry.ErrModuleNotFound)
}

func (r *Robot) lookupAdaptor(ctx context.Context, spec *config.ConnectionSpec) (*plugin.Bundle, error) {
	if spec.Module != "" {
		return r.registry.Register(ctx, spec.Module)
	}
	if b := r.registry.FindByAdaptor(spec.Adaptor); b != nil {
		return b, nil
	}
	if _, err := r.registry.Register(ctx, registry.ModulePrefix+spec.Adaptor); err == nil {
		if b := r.registry.FindByAdaptor(spec.Adaptor); b != nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no module provides adaptor %q: %w", spec.Adaptor, registry.ErrModuleNotFound)
}

func (r *Robot) uniqueConnectionName(base string) (string, bool) {
	if _, taken := r.connections[base]; !taken {
		return base, false
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := r.connections[candidate]; !taken {
			return candidate, true
		}
	}
}

// baseName picks the first non-empty candidate.
func baseName(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return "unnamed"
}
