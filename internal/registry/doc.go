// Package registry provides the capability registry at the center of the
// plugin system.
//
// The registry answers exactly two questions: which module provides
// capability X, and is module Y already loaded. Each registered module gets
// a Record holding its bundle, its advertised adaptor and driver capability
// lists, and its declared dependencies. Registration is idempotent by module
// name and recursive over dependencies, so a module graph converges to one
// record per module no matter how many robots ask for it.
//
// Capability lists are stored in plural form and singular lookups get an "s"
// appended before matching. This is a compatibility quirk kept on purpose;
// it is a bare suffix check, not real pluralization.
//
// The registry performs no locking. Registration must happen on a single
// control goroutine, typically during application assembly.
package registry
