package core

import (
	"fmt"
	"slices"
	"sync"

	"github.com/progressit/progressive/pkg/errors"
)

// EventKind names a closed family of events a component may post.
type EventKind string

// Event is an immutable value tagged with its kind.
type Event interface {
	Kind() EventKind
}

// Handler receives an event of the kind it was registered for.
type Handler func(Event)

// Listener is a handler table supplied by a parent: one handler per event
// kind it cares about. Dispatch is a direct lookup by kind.
type Listener struct {
	routes map[EventKind]route
}

// route is a handler plus the Go type check typed handlers need. A nil
// accepts takes every event of the kind.
type route struct {
	fn      Handler
	accepts func(Event) bool
}

// NewListener creates an empty listener.
func NewListener() *Listener {
	return &Listener{routes: make(map[EventKind]route)}
}

// Handle registers fn for kind, replacing any previous handler.
func (l *Listener) Handle(kind EventKind, fn Handler) *Listener {
	return l.set(kind, route{fn: fn})
}

func (l *Listener) set(kind EventKind, r route) *Listener {
	if l.routes == nil {
		l.routes = make(map[EventKind]route)
	}
	l.routes[kind] = r
	return l
}

// Handles reports whether the listener has a handler for kind.
func (l *Listener) Handles(kind EventKind) bool {
	if l == nil {
		return false
	}
	_, ok := l.routes[kind]
	return ok
}

// handler returns the handler that accepts e, or nil.
func (l *Listener) handler(e Event) Handler {
	if l == nil {
		return nil
	}
	r, ok := l.routes[e.Kind()]
	if !ok || r.fn == nil || (r.accepts != nil && !r.accepts(e)) {
		return nil
	}
	return r.fn
}

// On registers a typed handler on l. The kind is taken from E's zero value,
// so E's Kind method must not depend on its fields. An event of that kind
// whose Go type is not E is not handled: Post reports it as DroppedNoHandler.
//
//	l := core.NewListener()
//	core.On(l, func(e components.ButtonClicked) { ... })
func On[E Event](l *Listener, fn func(E)) *Listener {
	var zero E
	return l.set(zero.Kind(), route{
		fn: func(e Event) { fn(e.(E)) },
		accepts: func(e Event) bool {
			_, ok := e.(E)
			return ok
		},
	})
}

// Delivery is the outcome of a Bus.Post.
type Delivery int

const (
	Delivered Delivery = iota
	DroppedNoListener
	DroppedNoHandler
)

func (d Delivery) String() string {
	switch d {
	case Delivered:
		return "delivered"
	case DroppedNoListener:
		return "no_listener"
	case DroppedNoHandler:
		return "no_handler"
	default:
		return "unknown"
	}
}

// Bus is a component's private publish point. It enforces the declared event
// kinds and delivers synchronously to at most one bound listener.
//
// Bus does no thread checking of its own; Base guards every call.
type Bus struct {
	declared map[EventKind]struct{}
	listener *Listener
}

// NewBus creates a bus accepting exactly the given kinds.
func NewBus(kinds ...EventKind) *Bus {
	b := &Bus{declared: make(map[EventKind]struct{}, len(kinds))}
	for _, k := range kinds {
		b.declared[k] = struct{}{}
	}
	return b
}

// Declares reports whether kind may be posted on this bus.
func (b *Bus) Declares(kind EventKind) bool {
	_, ok := b.declared[kind]
	return ok
}

// SetListener binds l, replacing the previous listener. A nil l unbinds.
func (b *Bus) SetListener(l *Listener) {
	b.listener = l
}

// ClearListener unbinds the current listener. Clearing twice is harmless.
func (b *Bus) ClearListener() {
	b.listener = nil
}

// Listener returns the bound listener, or nil.
func (b *Bus) Listener() *Listener {
	return b.listener
}

// Post dispatches e to the bound listener. It fails with ErrUndeclaredEvent
// when e's kind was not declared, whether or not a listener is bound.
func (b *Bus) Post(e Event) (Delivery, error) {
	kind := e.Kind()
	if !b.Declares(kind) {
		return 0, fmt.Errorf("%w: %q", errors.ErrUndeclaredEvent, kind)
	}
	if b.listener == nil {
		return DroppedNoListener, nil
	}
	h := b.listener.handler(e)
	if h == nil {
		return DroppedNoHandler, nil
	}
	h(e)
	return Delivered, nil
}

// GlobalBus is a process-wide publish/subscribe channel for cross-cutting
// notifications outside the parent/child event path. It is safe for
// concurrent use; handlers run on the publisher's goroutine.
type GlobalBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[EventKind]map[int]Handler
}

// NewGlobalBus creates an empty bus.
func NewGlobalBus() *GlobalBus {
	return &GlobalBus{subs: make(map[EventKind]map[int]Handler)}
}

// Subscribe registers fn for kind and returns a function that removes it.
func (g *GlobalBus) Subscribe(kind EventKind, fn Handler) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	if g.subs[kind] == nil {
		g.subs[kind] = make(map[int]Handler)
	}
	g.subs[kind][id] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs[kind], id)
	}
}

// Publish delivers e to every subscriber of its kind in subscription order
// and returns how many received it.
func (g *GlobalBus) Publish(e Event) int {
	g.mu.RLock()
	subs := g.subs[e.Kind()]
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	handlers := make(map[int]Handler, len(subs))
	for id, h := range subs {
		handlers[id] = h
	}
	g.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		handlers[id](e)
	}
	return len(ids)
}
