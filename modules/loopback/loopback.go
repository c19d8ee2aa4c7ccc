// Package loopback provides an in-process transport used by examples and
// smoke tests. Connect and Disconnect only flip a flag and log, so a grid
// can be exercised end to end with no hardware attached.
package loopback

import (
	"context"
	"sync"

	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/plugin"
)

// ModuleName is the conventional registry name for this module.
const ModuleName = "botgrid-loopback"

// Adaptor is the loopback transport.
type Adaptor struct {
	mu        sync.Mutex
	name      string
	connected bool
}

// Name returns the adaptor's name.
func (a *Adaptor) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// SetName sets the adaptor's name.
func (a *Adaptor) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
}

// Connect marks the loopback as connected.
func (a *Adaptor) Connect(ctx context.Context) error {
	a.mu.Lock()
	a.connected = true
	a.mu.Unlock()
	ctxlog.FromContext(ctx).Debug("Loopback connected.", "adaptor", a.Name())
	return nil
}

// Disconnect marks the loopback as disconnected.
func (a *Adaptor) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	a.connected = false
	a.mu.Unlock()
	ctxlog.FromContext(ctx).Debug("Loopback disconnected.", "adaptor", a.Name())
	return nil
}

// Connected reports whether Connect has run without a later Disconnect.
func (a *Adaptor) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}

// Bundle returns the plugin bundle for registration.
func Bundle() *plugin.Bundle {
	return &plugin.Bundle{
		Adaptors: []string{"loopbacks"},
		NewAdaptor: func(opts plugin.AdaptorOptions) (plugin.Adaptor, error) {
			return &Adaptor{name: opts.Name}, nil
		},
	}
}
