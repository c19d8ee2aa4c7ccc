// Package robot implements the lifecycle orchestrator.
//
// A Robot owns named connections (transports) and named devices
// (peripherals), wires each device to one of its connections, and sequences
// the lifecycle: all connections connect in parallel, then all devices start
// in parallel, then the user work routine runs. Halt runs the mirror image,
// devices first.
//
// "Parallel" means every call in a phase is issued on its own goroutine and
// the phase waits for all of them before the next phase begins. The ordering
// guarantees between phases are strict: no device starts before every
// connection has connected, the work routine does not run before every
// device has started, and no connection disconnects before every device has
// halted.
//
// The connection and device factories live here too. Both resolve a
// capability name through the injected registry, falling back to on-demand
// registration of the conventionally named module, and substitute the "test"
// stubs when the runtime requests them.
package robot
