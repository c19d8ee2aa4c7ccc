package config

import (
	"os"
	"strconv"
)

// Operating and work modes.
const (
	ModeManual = "manual"
	ModeAuto   = "auto"

	WorkModeAsync = "async"

	EnvTest = "test"
)

// Environment variables consulted by FromEnv.
const (
	EnvVarMode     = "BOTGRID_MODE"
	EnvVarWorkMode = "BOTGRID_WORK_MODE"
	EnvVarTestMode = "BOTGRID_TEST_MODE"
	EnvVarEnv      = "BOTGRID_ENV"
)

// Runtime is the process-wide settings block consulted by every robot.
type Runtime struct {
	// Mode selects whether robots start themselves after construction
	// ("auto") or wait for an explicit Start call ("manual", the default).
	Mode string

	// WorkMode controls whether the user work routine runs as part of
	// Start. Only "async" (the default) runs it.
	WorkMode string

	// TestMode requests stub plugins in place of real hardware. It is
	// honored only when Env is "test".
	TestMode bool

	// Env names the process environment.
	Env string
}

// DefaultRuntime returns the runtime settings with all defaults applied.
func DefaultRuntime() *Runtime {
	return &Runtime{
		Mode:     ModeManual,
		WorkMode: WorkModeAsync,
	}
}

// FromEnv builds a Runtime from the BOTGRID_* environment variables, falling
// back to defaults for anything unset.
func FromEnv() *Runtime {
	rt := DefaultRuntime()
	if v := os.Getenv(EnvVarMode); v != "" {
		rt.Mode = v
	}
	if v := os.Getenv(EnvVarWorkMode); v != "" {
		rt.WorkMode = v
	}
	if v := os.Getenv(EnvVarTestMode); v != "" {
		rt.TestMode, _ = strconv.ParseBool(v)
	}
	rt.Env = os.Getenv(EnvVarEnv)
	return rt
}

// Stubbed reports whether test substitutes should replace real plugins. The
// test-mode flag alone is not enough; the process must also run in the test
// environment.
func (r *Runtime) Stubbed() bool {
	return r.TestMode && r.Env == EnvTest
}
