// Package config holds the two configuration surfaces of botgrid.
//
// Runtime is the process-wide settings block every robot consults: operating
// mode, work mode, and the test-mode switch. It is populated once from the
// environment and injected into robots, never read ambiently.
//
// The remaining types form the format-agnostic model of a robot grid file:
// which robots exist, their connections and devices, and the parameters each
// unit is created with. A format-specific Loader (see the hcl package)
// translates files on disk into this model.
package config
