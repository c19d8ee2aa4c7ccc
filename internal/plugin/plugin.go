// Package plugin defines the contracts between the botgrid core and the
// hardware plugin modules it orchestrates.
//
// A plugin module publishes a Bundle: the capability names it advertises and
// the constructors for its adaptors (transports) and drivers (peripherals).
// The core never links against hardware logic directly; it only resolves
// capability names through the registry and calls the constructors found
// there.
package plugin

import "context"

// Adaptor is the minimal transport contract. An adaptor binds a robot to a
// communication channel: a serial line, a network socket, or an in-process
// loopback.
type Adaptor interface {
	Name() string
	SetName(string)
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Driver is the minimal peripheral contract. A driver controls one unit
// (LED, sensor, motor) over the adaptor it was instantiated with.
type Driver interface {
	Name() string
	SetName(string)
	Start(ctx context.Context) error
	Halt(ctx context.Context) error
}

// AdaptorOptions carries everything a module needs to build one adaptor
// instance. Params holds implementation-specific settings (port, host, baud
// rate) passed through verbatim from the robot spec.
type AdaptorOptions struct {
	Name    string
	Adaptor string
	Params  map[string]any
}

// DriverOptions carries everything a module needs to build one driver
// instance. Connection is the adaptor the driver talks through. Device is a
// back-reference to the enclosing device wrapper, set before the constructor
// runs so the driver can reach it.
type DriverOptions struct {
	Name       string
	Driver     string
	Connection Adaptor
	Device     any
	Params     map[string]any
}

// Bundle describes one plugin module. Capability lists hold plural names;
// the registry pluralizes singular lookups before matching, so a module
// providing the "loopback" adaptor advertises "loopbacks".
type Bundle struct {
	Adaptors     []string
	Drivers      []string
	Dependencies []string
	NewAdaptor   func(AdaptorOptions) (Adaptor, error)
	NewDriver    func(DriverOptions) (Driver, error)
}
