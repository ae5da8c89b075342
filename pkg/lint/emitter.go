package lint

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// NodeListener handles a node event. A non-nil error aborts the walk and
// propagates out of Verify.
type NodeListener func(n *jsast.Node) error

// Emitter is a typed publish/subscribe hub keyed by event name (a selector
// string or a code-path event name). Listener errors propagate to the
// emitting caller.
type Emitter struct {
	listeners map[string][]any
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]any)}
}

// On subscribes a listener to an event. Listeners fire in subscription
// order within one event.
func (e *Emitter) On(event string, listener any) {
	e.listeners[event] = append(e.listeners[event], listener)
}

// Has reports whether the event has any listeners.
func (e *Emitter) Has(event string) bool {
	return len(e.listeners[event]) > 0
}

// Listeners returns the raw listeners of an event.
func (e *Emitter) Listeners(event string) []any {
	return e.listeners[event]
}

// EventNames returns every event name with at least one listener.
func (e *Emitter) EventNames() []string {
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	return names
}

// EmitNode delivers a node to every listener of the event. The first
// listener error stops delivery.
func (e *Emitter) EmitNode(event string, n *jsast.Node) error {
	for _, raw := range e.listeners[event] {
		listener, ok := raw.(NodeListener)
		if !ok {
			if fn, isFn := raw.(func(*jsast.Node) error); isFn {
				listener = fn
			} else {
				return fmt.Errorf("listener for %q is not a node listener (got %T)", event, raw)
			}
		}
		if err := listener(n); err != nil {
			return err
		}
	}
	return nil
}
