// Package hcl loads robot grid files written in HCL and translates them into
// the format-agnostic config model.
//
// A grid file declares robots with nested connection and device blocks:
//
//	robot "sprawl" {
//	  connection "core" {
//	    adaptor = "loopback"
//	    port    = "/dev/null"
//	  }
//	  device "led" {
//	    driver     = "ping"
//	    connection = "core"
//	  }
//	}
//
// Any attribute beyond the known selectors is kept as an
// implementation-specific parameter and handed to the plugin constructor
// verbatim.
package hcl
