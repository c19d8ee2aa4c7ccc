package config

// Model is the format-agnostic representation of a robot grid: every robot
// declared across the loaded configuration files.
type Model struct {
	Robots []*RobotSpec
}

// RobotSpec describes one robot to be constructed.
type RobotSpec struct {
	Name        string
	Connections []*ConnectionSpec
	Devices     []*DeviceSpec

	// Extra holds attributes the grid file set on the robot block beyond
	// the known ones. They are copied onto the Robot as passthrough
	// properties.
	Extra map[string]any
}

// ConnectionSpec describes one transport. Exactly one of Adaptor (capability
// lookup) or Module (explicit module name) should be set; Params are passed
// to the plugin constructor verbatim.
type ConnectionSpec struct {
	Name    string
	Adaptor string
	Module  string
	Params  map[string]any
}

// DeviceSpec describes one peripheral. Connection names the transport the
// device is wired to; when empty the robot picks the first registered one.
type DeviceSpec struct {
	Name       string
	Driver     string
	Module     string
	Connection string
	Params     map[string]any
}
