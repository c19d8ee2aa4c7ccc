// Package ping provides a trivial peripheral driver that answers "pong".
// It depends on the loopback module, so registering ping pulls loopback
// into the registry as well.
package ping

import (
	"context"
	"sync"

	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/plugin"
	"github.com/vk/botgrid/modules/loopback"
)

// ModuleName is the conventional registry name for this module.
const ModuleName = "botgrid-ping"

// Driver is the ping peripheral.
type Driver struct {
	mu         sync.Mutex
	name       string
	started    bool
	connection plugin.Adaptor
}

// Name returns the driver's name.
func (d *Driver) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// SetName sets the driver's name.
func (d *Driver) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

// Start marks the driver started.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	d.started = true
	d.mu.Unlock()
	ctxlog.FromContext(ctx).Debug("Ping driver started.", "driver", d.Name())
	return nil
}

// Halt marks the driver stopped.
func (d *Driver) Halt(ctx context.Context) error {
	d.mu.Lock()
	d.started = false
	d.mu.Unlock()
	ctxlog.FromContext(ctx).Debug("Ping driver halted.", "driver", d.Name())
	return nil
}

// Started reports whether the driver is between Start and Halt.
func (d *Driver) Started() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// Connection returns the adaptor the driver was created with.
func (d *Driver) Connection() plugin.Adaptor {
	return d.connection
}

// Ping answers pong.
func (d *Driver) Ping() string { return "pong" }

// Bundle returns the plugin bundle for registration.
func Bundle() *plugin.Bundle {
	return &plugin.Bundle{
		Drivers:      []string{"pings"},
		Dependencies: []string{loopback.ModuleName},
		NewDriver: func(opts plugin.DriverOptions) (plugin.Driver, error) {
			return &Driver{name: opts.Name, connection: opts.Connection}, nil
		},
	}
}
