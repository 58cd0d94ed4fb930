// Package core provides the reactive component engine.
//
// A component owns one native widget and, optionally, a set of child
// components. Its state is a single immutable data value; changing it with
// SetData re-renders exactly what the change affects:
//
//   - the own widget, when the self fingerprint of the data changed;
//   - the children, when the children fingerprint changed. The component
//     describes them as a ChildrenPlan and the engine reconciles that plan
//     against the current children with a positional, type-gated prefix diff.
//
// # Components
//
// Embed Base (or Leaf for childless components) and implement Renderer:
//
//	type Counter struct {
//	    core.Base[int, int]
//	    core.SelfPartitioned[int]
//	    core.NoopLifecycle
//	    label *toolkit.Label
//	}
//
//	func NewCounter(placers core.Placers, rt *core.Runtime) *Counter {
//	    c := &Counter{label: toolkit.NewLabel("")}
//	    c.MustInit(c, placers, rt)
//	    return c
//	}
//
//	func (c *Counter) Widget() core.Widget                       { return c.label }
//	func (c *Counter) RenderSelf(n int)                          { c.label.SetText(strconv.Itoa(n)) }
//	func (c *Counter) RenderChildrenPlan(int) core.ChildrenPlan  { return nil }
//	func (c *Counter) Lifecycle() core.LifecycleHandler          { return c }
//	func (c *Counter) EmittedEvents() []core.EventKind           { return nil }
//
// # Lifecycle
//
// Placement runs PrePlacement, attaches the widget through the component's
// Placers, binds the listener, runs PostPlacement and delivers props.
// Delivering props runs PreProps and PostProps; PostProps is where a
// component usually folds its props into data. Removal runs PreRemove,
// detaches the widget, unbinds the listener and runs PostRemove.
//
// # Events
//
// Each component declares the event kinds it may post. Its parent binds a
// Listener, a handler per kind, through the ChildPlan. Posting an undeclared
// kind is a programming error and panics.
//
// # Threading
//
// Every operation must run on the UI thread the Runtime is bound to, usually
// a uithread.Executor. Calls from any other goroutine panic before mutating
// anything.
package core
