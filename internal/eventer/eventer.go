// Package eventer implements the observer contract robots use to announce
// lifecycle notifications such as "ready" and "error".
//
// Delivery is synchronous on the emitting goroutine. Handlers that need to
// do slow work should hand it off themselves.
package eventer

import (
	"slices"
	"sync"
)

// Handler receives the arguments passed to Emit.
type Handler func(args ...any)

// Eventer dispatches named events to subscribed handlers. The declared event
// list is fixed at construction and reported separately from subscriptions,
// so a robot can advertise events nobody listens to yet.
type Eventer struct {
	mu       sync.Mutex
	declared []string
	handlers map[string][]Handler
}

// New creates an Eventer declaring the given event names.
func New(events ...string) *Eventer {
	return &Eventer{
		declared: slices.Clone(events),
		handlers: make(map[string][]Handler),
	}
}

// On subscribes a handler to an event. Handlers for one event run in
// subscription order.
func (e *Eventer) On(event string, h Handler) {
	if h == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[event] = append(e.handlers[event], h)
}

// Emit delivers args to every handler subscribed to event. The handler list
// is snapshotted under the lock so handlers may subscribe more handlers.
func (e *Eventer) Emit(event string, args ...any) {
	e.mu.Lock()
	hs := slices.Clone(e.handlers[event])
	e.mu.Unlock()

	for _, h := range hs {
		h(args...)
	}
}

// Events returns the declared event names.
func (e *Eventer) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.declared)
}
