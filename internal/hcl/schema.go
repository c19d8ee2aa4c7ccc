package hcl

import "github.com/hashicorp/hcl/v2"

// ConnectionBlock represents a `connection` block inside a robot block.
type ConnectionBlock struct {
	Name    string   `hcl:"name,label"`
	Adaptor string   `hcl:"adaptor,optional"`
	Module  string   `hcl:"module,optional"`
	Params  hcl.Body `hcl:",remain"`
}

// DeviceBlock represents a `device` block inside a robot block.
type DeviceBlock struct {
	Name       string   `hcl:"name,label"`
	Driver     string   `hcl:"driver,optional"`
	Module     string   `hcl:"module,optional"`
	Connection string   `hcl:"connection,optional"`
	Params     hcl.Body `hcl:",remain"`
}

// RobotBlock represents a top-level `robot` block.
type RobotBlock struct {
	Name        string             `hcl:"name,label"`
	Connections []*ConnectionBlock `hcl:"connection,block"`
	Devices     []*DeviceBlock     `hcl:"device,block"`
	Extra       hcl.Body           `hcl:",remain"`
}

// GridConfig represents the top-level structure of a grid file.
type GridConfig struct {
	Robots []*RobotBlock `hcl:"robot,block"`
}
