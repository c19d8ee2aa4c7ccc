package robot

import (
	"context"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/registry"
)

// Work is the user routine run once every connection and device has started.
// It is called with the owning robot and is expected to set up its own loops
// and return; a routine that never returns keeps the robot from being marked
// running.
type Work func(ctx context.Context, r *Robot)

// Command is a named routine exposed on a robot.
type Command func(args ...any) any

// Options configure a robot under construction.
type Options struct {
	// Name identifies the robot. Empty gets a generated name.
	Name string

	// Connection is the deprecated single-spec form of Connections.
	Connection  *config.ConnectionSpec
	Connections []*config.ConnectionSpec

	// Device is the deprecated single-spec form of Devices.
	Device  *config.DeviceSpec
	Devices []*config.DeviceSpec

	// Work is run after startup. Play is a deprecated alias consulted only
	// when Work is nil.
	Work Work
	Play Work

	// Commands, when set, must be a map[string]Command or a zero-argument
	// function returning a non-nil one. When unset, function-valued Extra
	// entries become the robot's commands.
	Commands any

	// OnError, when set, is invoked with the failure before the "error"
	// notification fires.
	OnError func(error)

	// Events are extra notification names declared beyond the built-in
	// "ready" and "error".
	Events []string

	// Extra holds passthrough options copied onto the robot.
	Extra map[string]any

	// Runtime defaults to config.FromEnv().
	Runtime *config.Runtime

	// Registry resolves plugin capabilities. A nil registry still allows a
	// robot with no connections or devices.
	Registry *registry.Registry
}
