package robot

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/eventer"
	"github.com/vk/botgrid/internal/registry"
)

// Notification names every robot declares.
const (
	EventReady = "ready"
	EventError = "error"
)

var (
	// ErrNoConnections reports a robot configured with devices but no
	// connections to wire them to.
	ErrNoConnections = errors.New("no connections configured")

	// ErrInvalidCommands reports a commands option that is neither a map
	// nor a routine returning one.
	ErrInvalidCommands = errors.New("invalid commands option")

	// ErrUnknownConnection reports a device naming a connection the robot
	// does not have.
	ErrUnknownConnection = errors.New("unknown connection")
)

// Robot aggregates named connections and devices and drives their lifecycle.
type Robot struct {
	name string

	connections map[string]*Connection
	connOrder   []string
	devices     map[string]*Device
	devOrder    []string

	work     Work
	commands map[string]Command
	onError  func(error)
	extra    map[string]any

	eventer  *eventer.Eventer
	runtime  *config.Runtime
	registry *registry.Registry

	// startMu serializes whole start sequences, so an auto-mode start and
	// an explicit one cannot interleave their phases.
	startMu sync.Mutex

	mu      sync.Mutex
	running bool
}

// New constructs a robot from options: connections first, then devices, then
// commands and passthrough properties. In auto mode the robot hands Start to
// a fresh goroutine before returning, so callers get a window to subscribe
// before the ready notification fires.
func New(ctx context.Context, opts *Options) (*Robot, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := ctxlog.FromContext(ctx)

	rt := opts.Runtime
	if rt == nil {
		rt = config.FromEnv()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.New(nil)
	}

	r := &Robot{
		name:        opts.Name,
		connections: make(map[string]*Connection),
		devices:     make(map[string]*Device),
		work:        opts.Work,
		onError:     opts.OnError,
		extra:       maps.Clone(opts.Extra),
		eventer:     eventer.New(append([]string{EventReady, EventError}, opts.Events...)...),
		runtime:     rt,
		registry:    reg,
	}
	if r.name == "" {
		r.name = "robot-" + uuid.NewString()[:8]
	}
	if r.work == nil && opts.Play != nil {
		logger.Warn("The play option is deprecated, use work instead.", "robot", r.name)
		r.work = opts.Play
	}
	if r.work == nil {
		r.work = func(ctx context.Context, r *Robot) {
			ctxlog.FromContext(ctx).Info("No work routine defined, standing by.", "robot", r.name)
		}
	}

	connSpecs := opts.Connections
	if opts.Connection != nil {
		logger.Warn("The singular connection option is deprecated, use connections.", "robot", r.name)
		connSpecs = append([]*config.ConnectionSpec{opts.Connection}, connSpecs...)
	}
	devSpecs := opts.Devices
	if opts.Device != nil {
		logger.Warn("The singular device option is deprecated, use devices.", "robot", r.name)
		devSpecs = append([]*config.DeviceSpec{opts.Device}, devSpecs...)
	}

	for _, spec := range connSpecs {
		if _, err := r.AddConnection(ctx, spec); err != nil {
			return nil, err
		}
	}

	if len(devSpecs) > 0 && len(r.connOrder) == 0 {
		return nil, fmt.Errorf("robot %q declares devices: %w", r.name, ErrNoConnections)
	}
	for _, spec := range devSpecs {
		if _, err := r.AddDevice(ctx, spec); err != nil {
			return nil, err
		}
	}

	cmds, err := resolveCommands(opts)
	if err != nil {
		return nil, fmt.Errorf("robot %q: %w", r.name, err)
	}
	r.commands = cmds

	logger.Debug("Robot constructed.",
		"robot", r.name,
		"connections", len(r.connOrder),
		"devices", len(r.devOrder),
		"commands", len(r.commands))

	if rt.Mode == config.ModeAuto {
		go func() { _ = r.Start(ctx) }()
	}
	return r, nil
}

// resolveCommands picks the robot's command set. An explicit commands option
// wins; otherwise every function-valued passthrough option becomes a command
// under its option name.
func resolveCommands(opts *Options) (map[string]Command, error) {
	switch c := opts.Commands.(type) {
	case nil:
	case map[string]Command:
		return maps.Clone(c), nil
	case func() map[string]Command:
		if m := c(); m != nil {
			return m, nil
		}
		return nil, ErrInvalidCommands
	default:
		return nil, ErrInvalidCommands
	}

	cmds := make(map[string]Command)
	for name, v := range opts.Extra {
		switch fn := v.(type) {
		case Command:
			cmds[name] = fn
		case func(args ...any) any:
			cmds[name] = Command(fn)
		}
	}
	return cmds, nil
}

// Name returns the robot's name.
func (r *Robot) Name() string { return r.name }

// Running reports whether the robot has completed a start and not halted.
func (r *Robot) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Robot) setRunning(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = v
}

// On subscribes a handler to one of the robot's notifications.
func (r *Robot) On(event string, h eventer.Handler) { r.eventer.On(event, h) }

// Emit fires one of the robot's notifications.
func (r *Robot) Emit(event string, args ...any) { r.eventer.Emit(event, args...) }

// Connection returns the named connection, or nil.
func (r *Robot) Connection(name string) *Connection { return r.connections[name] }

// Device returns the named device, or nil.
func (r *Robot) Device(name string) *Device { return r.devices[name] }

// Connections returns the robot's connections in registration order.
func (r *Robot) Connections() []*Connection {
	out := make([]*Connection, 0, len(r.connOrder))
	for _, name := range r.connOrder {
		out = append(out, r.connections[name])
	}
	return out
}

// Devices returns the robot's devices in registration order.
func (r *Robot) Devices() []*Device {
	out := make([]*Device, 0, len(r.devOrder))
	for _, name := range r.devOrder {
		out = append(out, r.devices[name])
	}
	return out
}

// Command returns the named command.
func (r *Robot) Command(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Param returns a passthrough option copied onto the robot at construction.
func (r *Robot) Param(name string) (any, bool) {
	v, ok := r.extra[name]
	return v, ok
}

// Start drives the startup sequence: all connections connect in parallel,
// then all devices start in parallel, then the work routine runs. Starting
// an already-running robot is a no-op; concurrent starts serialize, so the
// later caller waits and then no-ops. On failure the remaining sequence is
// aborted, the optional error handler and the "error" notification fire, and
// the error is returned with the robot left not running.
func (r *Robot) Start(ctx context.Context) error {
	r.startMu.Lock()
	defer r.startMu.Unlock()

	logger := ctxlog.FromContext(ctx)
	if r.Running() {
		logger.Debug("Robot already running, start ignored.", "robot", r.name)
		return nil
	}
	logger.Info("Starting robot.",
		"robot", r.name,
		"connections", len(r.connOrder),
		"devices", len(r.devOrder))

	if err := r.connectAll(ctx); err != nil {
		return r.startupFailed(ctx, fmt.Errorf("starting connections: %w", err))
	}
	if err := r.startDevices(ctx); err != nil {
		return r.startupFailed(ctx, fmt.Errorf("starting devices: %w", err))
	}
	r.startWork(ctx)
	return nil
}

// startWork announces readiness and hands control to the user routine. The
// work routine only runs in async work mode; the robot is marked running
// either way.
func (r *Robot) startWork(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	r.eventer.Emit(EventReady, r)
	if r.runtime.WorkMode == config.WorkModeAsync {
		logger.Info("Working.", "robot", r.name)
		r.work(ctx, r)
	} else {
		logger.Debug("Work mode is not async, work routine skipped.",
			"robot", r.name, "workMode", r.runtime.WorkMode)
	}
	r.setRunning(true)
}

func (r *Robot) startupFailed(ctx context.Context, err error) error {
	ctxlog.FromContext(ctx).Error("Robot failed to start.", "robot", r.name, "error", err)
	if r.onError != nil {
		r.onError(err)
	}
	r.eventer.Emit(EventError, err)
	return err
}

// Halt stops everything: devices halt in parallel and, only once every halt
// has completed, connections disconnect in parallel. The robot is marked not
// running immediately, not when the teardown finishes.
func (r *Robot) Halt(ctx context.Context) error {
	r.setRunning(false)
	ctxlog.FromContext(ctx).Info("Halting robot.", "robot", r.name)

	devErr := r.haltDevices(ctx)
	connErr := r.disconnectAll(ctx)
	return errors.Join(devErr, connErr)
}

func (r *Robot) connectAll(ctx context.Context) error {
	return inParallel(r.Connections(), func(c *Connection) error {
		return c.Connect(ctx)
	})
}

func (r *Robot) disconnectAll(ctx context.Context) error {
	return inParallel(r.Connections(), func(c *Connection) error {
		return c.Disconnect(ctx)
	})
}

func (r *Robot) startDevices(ctx context.Context) error {
	return inParallel(r.Devices(), func(d *Device) error {
		return d.Start(ctx)
	})
}

func (r *Robot) haltDevices(ctx context.Context) error {
	return inParallel(r.Devices(), func(d *Device) error {
		return d.Halt(ctx)
	})
}

// inParallel issues op for every item on its own goroutine and waits for the
// whole batch, joining the failures. There is no cancellation: once a phase
// is issued it runs to completion or failure.
func inParallel[T any](items []T, op func(T) error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(items))
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = op(item)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
