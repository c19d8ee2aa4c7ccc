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

// Device binds a robot to one controllable peripheral. The connection it
// talks through is owned by the robot, not the device.
type Device struct {
	name       string
	robot      *Robot
	connection *Connection
	driver     plugin.Driver
	driverCap  string
	params     map[string]any
}

// Name returns the device's name, unique within its robot.
func (d *Device) Name() string { return d.name }

// Robot returns the owning robot.
func (d *Device) Robot() *Robot { return d.robot }

// Connection returns the transport this device is wired to.
func (d *Device) Connection() *Connection { return d.connection }

// Driver returns the plugin peripheral behind this device.
func (d *Device) Driver() plugin.Driver { return d.driver }

// Start brings the peripheral up. Spec params are echoed in the log.
func (d *Device) Start(ctx context.Context) error {
	ctxlog.FromContext(ctx).Info("Starting device.",
		"robot", d.robot.name,
		"device", d.name,
		"connection", d.connection.name,
		"params", d.params)
	return d.driver.Start(ctx)
}

// Halt stops the peripheral.
func (d *Device) Halt(ctx context.Context) error {
	ctxlog.FromContext(ctx).Info("Halting device.",
		"robot", d.robot.name,
		"device", d.name)
	return d.driver.Halt(ctx)
}

// AddDevice builds one peripheral from its spec and registers it on the
// robot. Name collisions are recovered by suffixing. A device naming a
// connection the robot does not have is fatal, like an unresolvable module:
// logged, process interrupt requested, error returned. A device naming no
// connection gets the robot's first-registered one.
func (r *Robot) AddDevice(ctx context.Context, spec *config.DeviceSpec) (*Device, error) {
	logger := ctxlog.FromContext(ctx)

	conn, err := r.deviceConnection(ctx, spec)
	if err != nil {
		return nil, err
	}

	bundle, err := r.resolveDriverBundle(ctx, spec)
	if err != nil {
		interrupt.Fatal(ctx, "Cannot resolve device module.",
			"robot", r.name, "device", spec.Name, "driver", spec.Driver, "error", err)
		return nil, err
	}
	if bundle.NewDriver == nil {
		err := fmt.Errorf("module for driver %q provides no driver constructor", spec.Driver)
		interrupt.Fatal(ctx, "Cannot resolve device module.",
			"robot", r.name, "device", spec.Name, "error", err)
		return nil, err
	}

	name, renamed := r.uniqueDeviceName(baseName(spec.Name, spec.Driver, "device"))
	if renamed {
		logger.Warn("Device name already in use, renaming.",
			"robot", r.name, "requested", spec.Name, "assigned", name)
	}

	// The wrapper exists before the driver so the plugin can hold a
	// back-reference from the moment it is constructed.
	dev := &Device{
		name:       name,
		robot:      r,
		connection: conn,
		driverCap:  baseName(spec.Driver, spec.Module),
		params:     spec.Params,
	}
	driver, err := bundle.NewDriver(plugin.DriverOptions{
		Name:       name,
		Driver:     spec.Driver,
		Connection: conn.adaptor,
		Device:     dev,
		Params:     spec.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("creating driver for device %q: %w", name, err)
	}
	driver.SetName(name)
	dev.driver = driver

	r.devices[name] = dev
	r.devOrder = append(r.devOrder, name)
	return dev, nil
}

// deviceConnection resolves the transport a device spec names, or defaults
// to the robot's first-registered connection.
func (r *Robot) deviceConnection(ctx context.Context, spec *config.DeviceSpec) (*Connection, error) {
	if spec.Connection != "" {
		conn, ok := r.connections[spec.Connection]
		if !ok {
			err := fmt.Errorf("device %q wants connection %q: %w", spec.Name, spec.Connection, ErrUnknownConnection)
			interrupt.Fatal(ctx, "Device references a connection the robot does not have.",
				"robot", r.name, "device", spec.Name, "connection", spec.Connection)
			return nil, err
		}
		return conn, nil
	}
	if len(r.connOrder) == 0 {
		return nil, fmt.Errorf("device %q: %w", spec.Name, ErrNoConnections)
	}
	return r.connections[r.connOrder[0]], nil
}

// resolveDriverBundle mirrors the adaptor resolution, keyed on driver
// capabilities. The stub is always requested under the literal capability
// "test", never by naming convention on the requested driver.
func (r *Robot) resolveDriverBundle(ctx context.Context, spec *config.DeviceSpec) (*plugin.Bundle, error) {
	if r.runtime.Stubbed() {
		if _, err := r.registry.Register(ctx, registry.ModulePrefix+"test"); err != nil {
			return nil, fmt.Errorf("resolving test stub driver: %w", err)
		}
		if stub := r.registry.FindByDriver("test"); stub != nil {
			return stub, nil
		}
		return nil, fmt.Errorf("resolving test stub driver: %w", registry.ErrModuleNotFound)
	}

	if spec.Module != "" {
		return r.registry.Register(ctx, spec.Module)
	}
	if b := r.registry.FindByDriver(spec.Driver); b != nil {
		return b, nil
	}
	if _, err := r.registry.Register(ctx, registry.ModulePrefix+spec.Driver); err == nil {
		if b := r.registry.FindByDriver(spec.Driver); b != nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no module provides driver %q: %w", spec.Driver, registry.ErrModuleNotFound)
}

func (r *Robot) uniqueDeviceName(base string) (string, bool) {
	if _, taken := r.devices[base]; !taken {
		return base, false
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := r.devices[candidate]; !taken {
			return candidate, true
		}
	}
}
