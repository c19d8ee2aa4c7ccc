// Package testcore provides the stand-ins substituted for real plugins when
// the runtime runs in test mode. Both the adaptor and the driver advertise
// the "test" capability; every lifecycle method is a recording no-op.
package testcore

import (
	"context"
	"sync"

	"github.com/vk/botgrid/internal/plugin"
)

// ModuleName is the conventional registry name for this module.
const ModuleName = "botgrid-test"

// Adaptor is the stub transport.
type Adaptor struct {
	mu          sync.Mutex
	name        string
	Connects    int
	Disconnects int
}

func (a *Adaptor) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

func (a *Adaptor) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
}

// Connect counts the call and succeeds.
func (a *Adaptor) Connect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Connects++
	return nil
}

// Disconnect counts the call and succeeds.
func (a *Adaptor) Disconnect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Disconnects++
	return nil
}

// Driver is the stub peripheral.
type Driver struct {
	mu     sync.Mutex
	name   string
	Starts int
	Halts  int
}

func (d *Driver) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

func (d *Driver) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

// Start counts the call and succeeds.
func (d *Driver) Start(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Starts++
	return nil
}

// Halt counts the call and succeeds.
func (d *Driver) Halt(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Halts++
	return nil
}

// Bundle returns the plugin bundle for registration.
func Bundle() *plugin.Bundle {
	return &plugin.Bundle{
		Adaptors: []string{"tests"},
		Drivers:  []string{"tests"},
		NewAdaptor: func(opts plugin.AdaptorOptions) (plugin.Adaptor, error) {
			return &Adaptor{name: opts.Name}, nil
		},
		NewDriver: func(opts plugin.DriverOptions) (plugin.Driver, error) {
			return &Driver{name: opts.Name}, nil
		},
	}
}
