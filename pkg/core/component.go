package core

import (
	"fmt"
	"log/slog"
	"reflect"

	uuid "github.com/satori/go.uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/progressit/progressive/pkg/errors"
)

// Component is the type-erased surface a parent uses to drive a child.
// It is satisfied by any struct that embeds Base (or Leaf) and implements
// Renderer.
type Component interface {
	Widget() Widget
	Lifecycle() LifecycleHandler
	SetProps(props any)
	SetListener(l *Listener)
	ClearListener()
	node() *node
}

// Renderer is the capability set a concrete component supplies. D is the
// component's data type.
type Renderer[D any] interface {
	// PartitionForSelf projects the part of data that affects the own widget.
	PartitionForSelf(data D) Fingerprint
	// PartitionForChildren projects the part of data that affects the children plan.
	PartitionForChildren(data D) Fingerprint
	// Widget returns the stable native widget handle, with nothing rendered yet.
	Widget() Widget
	// RenderSelf updates the own widget to reflect data.
	RenderSelf(data D)
	// RenderChildrenPlan describes the children for data.
	RenderChildrenPlan(data D) ChildrenPlan
	// Lifecycle returns the component's hooks. Return the same instance every time.
	Lifecycle() LifecycleHandler
	// EmittedEvents returns the closed set of event kinds the component may post.
	EmittedEvents() []EventKind
}

// node is the data-type independent part of a component.
type node struct {
	id       string
	typeName string
	self     Component
	placers  Placers
	rt       *Runtime
	logger   *slog.Logger
	bus      *Bus
	hasData  bool
	plan     ChildrenPlan
	children []Component
}

// ensureThread panics before any mutation if the caller is off the UI thread.
func (n *node) ensureThread(op string) {
	if n.rt == nil {
		panic(errors.New(op, errors.KindConfig, n.typeName,
			fmt.Errorf("%w: component used before Init", errors.ErrMissingCollaborator)))
	}
	if !n.rt.thread.OnThread() {
		n.rt.metrics.violation("thread")
		panic(errors.New(op, errors.KindThread, n.typeName, errors.ErrWrongThread))
	}
}

// Base is the reactive engine a concrete component embeds. D is the data type,
// P the props type.
//
//	type Greeting struct {
//	    core.Base[string, string]
//	    core.SelfPartitioned[string]
//	    label *toolkit.Label
//	}
//
//	func NewGreeting(placers core.Placers, rt *core.Runtime) *Greeting {
//	    g := &Greeting{label: toolkit.NewLabel()}
//	    g.MustInit(g, placers, rt)
//	    return g
//	}
//
// All methods must be called on the runtime's UI thread.
type Base[D, P any] struct {
	n          node
	renderer   Renderer[D]
	props      P
	data       D
	selfFP     *Fingerprint
	childrenFP *Fingerprint
}

func (b *Base[D, P]) node() *node { return &b.n }

func (b *Base[D, P]) propsType() P {
	var zero P
	return zero
}

// Init wires the component. self must be the struct embedding this Base.
// A missing collaborator is a configuration error.
func (b *Base[D, P]) Init(self Renderer[D], placers Placers, rt *Runtime) error {
	const op = "core.Init"
	if self == nil {
		return errors.New(op, errors.KindConfig, "", fmt.Errorf("%w: renderer", errors.ErrMissingCollaborator))
	}
	typeName := reflect.TypeOf(self).String()
	if b.n.rt != nil {
		return errors.New(op, errors.KindConfig, typeName, fmt.Errorf("component already initialized"))
	}
	if rt == nil {
		return errors.New(op, errors.KindConfig, typeName, fmt.Errorf("%w: runtime", errors.ErrMissingCollaborator))
	}
	if placers.Attach == nil || placers.Detach == nil {
		return errors.New(op, errors.KindConfig, typeName, fmt.Errorf("%w: placers", errors.ErrMissingCollaborator))
	}
	c, ok := self.(Component)
	if !ok || c.node() != &b.n {
		return errors.New(op, errors.KindConfig, typeName, fmt.Errorf("renderer does not embed this Base"))
	}

	id := uuid.Must(uuid.NewV4()).String()
	b.renderer = self
	b.n = node{
		id:       id,
		typeName: typeName,
		self:     c,
		placers:  placers,
		rt:       rt,
		logger:   rt.logger.With("component", typeName, "id", id),
		bus:      NewBus(self.EmittedEvents()...),
	}
	b.n.logger.Debug("initialized")
	return nil
}

// MustInit is like Init but panics on a configuration error.
func (b *Base[D, P]) MustInit(self Renderer[D], placers Placers, rt *Runtime) {
	if err := b.Init(self, placers, rt); err != nil {
		panic(err)
	}
}

// ID returns the component's unique id.
func (b *Base[D, P]) ID() string { return b.n.id }

// Logger returns the component-scoped logger.
func (b *Base[D, P]) Logger() *slog.Logger { return b.n.logger }

// Runtime returns the runtime the component was initialized with.
func (b *Base[D, P]) Runtime() *Runtime { return b.n.rt }

// Placers returns the placers supplied at construction.
func (b *Base[D, P]) Placers() Placers { return b.n.placers }

// GlobalBus returns the runtime's global bus, or nil.
func (b *Base[D, P]) GlobalBus() *GlobalBus {
	if b.n.rt == nil {
		return nil
	}
	return b.n.rt.global
}

// SetProps runs PreProps, stores props, then runs PostProps. The engine never
// inspects props; PostProps usually merges them into data and calls SetData.
func (b *Base[D, P]) SetProps(props any) {
	const op = "core.SetProps"
	n := &b.n
	n.ensureThread(op)
	p, ok := props.(P)
	if !ok && props != nil {
		n.rt.metrics.violation("props")
		panic(errors.New(op, errors.KindProps, n.typeName,
			fmt.Errorf("%w: got %T, want %s", errors.ErrPropsType, props, reflect.TypeOf((*P)(nil)).Elem())))
	}
	n.logger.Debug("setting props", "props", props)

	lc := lifecycleOf(n.self)
	n.rt.observe(n, HookPreProps, nil)
	lc.PreProps()
	b.props = p
	n.rt.observe(n, HookPostProps, nil)
	lc.PostProps()
}

// Props returns the last props delivered by the parent. Treat them as read-only.
func (b *Base[D, P]) Props() P {
	b.n.ensureThread("core.Props")
	return b.props
}

// Data returns the committed data. It is the zero value before the first SetData.
func (b *Base[D, P]) Data() D {
	b.n.ensureThread("core.Data")
	return b.data
}

// HasData reports whether SetData has committed a value.
func (b *Base[D, P]) HasData() bool {
	b.n.ensureThread("core.HasData")
	return b.n.hasData
}

// SetData commits data and re-renders what it affects. Calling it with a value
// structurally equal to the committed data has no effect. Absent (nil) data is
// ignored before the first commit and panics with ErrAbsentData after it.
//
// data must be an immutable value: mutating a committed value in place
// defeats change detection.
func (b *Base[D, P]) SetData(data D) {
	const op = "core.SetData"
	n := &b.n
	n.ensureThread(op)

	absent := isAbsent(data)
	switch {
	case !n.hasData && absent:
		return
	case absent:
		panic(errors.New(op, errors.KindConfig, n.typeName, errors.ErrAbsentData))
	case n.hasData && dataEqual(data, b.data):
		n.logger.Debug("no change in data")
		return
	}

	span, end := n.rt.startSpan("progressive.SetData", trace.WithAttributes(
		attribute.String("progressive.component", n.typeName),
		attribute.String("progressive.id", n.id),
	))
	defer end()
	defer recordPanic(span)

	n.logger.Debug("setting data", "data", data)
	selfFP := b.renderer.PartitionForSelf(data)
	childrenFP := b.renderer.PartitionForChildren(data)

	renderSelf := b.selfFP == nil || !b.selfFP.Equal(selfFP)
	if renderSelf {
		n.logger.Debug("self data changed, rendering")
		n.rt.observe(n, HookRenderSelf, nil)
		b.renderer.RenderSelf(data)
		b.selfFP = &selfFP
		n.rt.metrics.render(n.typeName, "self")
	}

	// Committed before the children so nested evaluation sees the new value.
	b.data = data
	n.hasData = true

	renderChildren := b.childrenFP == nil || !b.childrenFP.Equal(childrenFP)
	span.SetAttributes(
		attribute.Bool("progressive.render_self", renderSelf),
		attribute.Bool("progressive.render_children", renderChildren),
	)
	if !renderChildren {
		return
	}
	n.logger.Debug("children data changed, rendering plan")
	n.rt.observe(n, HookRenderPlan, nil)
	plan := b.renderer.RenderChildrenPlan(data)
	b.childrenFP = &childrenFP
	n.rt.metrics.render(n.typeName, "children")
	n.reconcile(plan)
}

// SetListener binds l to the component's bus. It must be called on every
// placement or reuse since the same instance may serve a different parent.
func (b *Base[D, P]) SetListener(l *Listener) {
	n := &b.n
	n.ensureThread("core.SetListener")
	n.logger.Debug("setting listener", "bound", l != nil)
	n.bus.SetListener(l)
}

// ClearListener unbinds the current listener, if any.
func (b *Base[D, P]) ClearListener() {
	n := &b.n
	n.ensureThread("core.ClearListener")
	n.logger.Debug("clearing listener")
	n.bus.ClearListener()
}

// Post publishes e to the bound listener. Posting a kind missing from
// EmittedEvents panics, whether or not a listener is bound. Without a
// listener, or without a handler for the kind, e is dropped.
func (b *Base[D, P]) Post(e Event) {
	const op = "core.Post"
	n := &b.n
	n.ensureThread(op)
	if e == nil {
		n.rt.metrics.violation("undeclared_event")
		panic(errors.New(op, errors.KindUndeclaredEvent, n.typeName,
			fmt.Errorf("%w: nil event", errors.ErrUndeclaredEvent)))
	}
	n.logger.Debug("posting event", "kind", e.Kind())
	delivery, err := n.bus.Post(e)
	if err != nil {
		n.rt.metrics.violation("undeclared_event")
		panic(errors.New(op, errors.KindUndeclaredEvent, n.typeName, err))
	}
	n.rt.metrics.posted(e.Kind(), delivery)
	if delivery != Delivered {
		n.logger.Debug("event dropped", "kind", e.Kind(), "reason", delivery.String())
	}
}

// Place is the entry point for a root component: it attaches the widget
// through the component's placers, binds listener and delivers props.
func Place(c Component, listener *Listener, props any) {
	n := c.node()
	n.ensureThread("core.Place")
	n.logger.Info("placing component")
	mount(c, listener, props)
}

// Remove detaches a root component placed with Place.
func Remove(c Component) {
	n := c.node()
	n.ensureThread("core.Remove")
	n.logger.Info("removing component")
	unmount(c)
}

func mount(c Component, listener *Listener, props any) {
	n := c.node()
	widget := c.Widget()
	lc := lifecycleOf(c)

	n.rt.observe(n, HookPrePlacement, nil)
	lc.PrePlacement()
	n.rt.observe(n, HookAttach, nil)
	n.placers.Attach(widget)
	c.SetListener(listener)
	n.rt.observe(n, HookPostPlacement, nil)
	lc.PostPlacement()

	c.SetProps(props)
}

func unmount(c Component) {
	n := c.node()
	widget := c.Widget()
	lc := lifecycleOf(c)

	n.rt.observe(n, HookPreRemove, nil)
	lc.PreRemove()
	n.rt.observe(n, HookDetach, nil)
	n.placers.Detach(widget)
	c.ClearListener()
	n.rt.observe(n, HookPostRemove, nil)
	lc.PostRemove()
}

// dataEqual is structural equality: an Equal(D) bool method when D has one,
// reflect.DeepEqual otherwise.
func dataEqual[D any](a, b D) bool {
	if eq, ok := any(a).(interface{ Equal(D) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// isAbsent reports a nil data value.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func recordPanic(span trace.Span) {
	if r := recover(); r != nil {
		span.SetStatus(codes.Error, fmt.Sprint(r))
		panic(r)
	}
}
