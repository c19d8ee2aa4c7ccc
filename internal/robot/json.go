package robot

import (
	"slices"
)

// JSONRobot is the serialized form of a robot.
type JSONRobot struct {
	Name        string            `json:"name"`
	Connections []*JSONConnection `json:"connections"`
	Devices     []*JSONDevice     `json:"devices"`
	Commands    []string          `json:"commands"`
	Events      []string          `json:"events"`
}

// JSONConnection is the serialized form of a connection.
type JSONConnection struct {
	Name    string         `json:"name"`
	Adaptor string         `json:"adaptor"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONDevice is the serialized form of a device.
type JSONDevice struct {
	Name       string         `json:"name"`
	Driver     string         `json:"driver"`
	Connection string         `json:"connection"`
	Details    map[string]any `json:"details,omitempty"`
}

// ToJSON serializes the robot, delegating each connection and device to its
// own serializer. Command names are sorted; slices are never nil so the JSON
// always carries arrays.
func (r *Robot) ToJSON() *JSONRobot {
	out := &JSONRobot{
		Name:        r.name,
		Connections: []*JSONConnection{},
		Devices:     []*JSONDevice{},
		Commands:    []string{},
		Events:      r.eventer.Events(),
	}
	for _, conn := range r.Connections() {
		out.Connections = append(out.Connections, conn.ToJSON())
	}
	for _, dev := range r.Devices() {
		out.Devices = append(out.Devices, dev.ToJSON())
	}
	for name := range r.commands {
		out.Commands = append(out.Commands, name)
	}
	slices.Sort(out.Commands)
	return out
}

// ToJSON serializes the connection.
func (c *Connection) ToJSON() *JSONConnection {
	return &JSONConnection{
		Name:    c.name,
		Adaptor: c.adaptorCap,
		Details: c.params,
	}
}

// ToJSON serializes the device.
func (d *Device) ToJSON() *JSONDevice {
	return &JSONDevice{
		Name:       d.name,
		Driver:     d.driverCap,
		Connection: d.connection.name,
		Details:    d.params,
	}
}
