package core

// Widget is an opaque native widget handle. The engine never inspects it;
// it only hands it to Placers.
type Widget any

// Placers insert and remove a component's widget in its parent's container.
// A parent supplies them when it constructs a child, usually closing over
// its own container widget.
type Placers struct {
	Attach func(Widget)
	Detach func(Widget)
}

// ChildPlan is one intended child: the component instance, the props to give
// it, and an optional listener for its events.
//
// When the diff reuses an existing instance at the same position, the plan's
// Component is discarded and only Props and Listener are applied.
type ChildPlan struct {
	Component Component
	Props     any
	Listener  *Listener
}

// ChildrenPlan is the ordered set of children for the current data. Order is
// the basis of the positional diff.
type ChildrenPlan []ChildPlan

// Child builds a ChildPlan.
func Child(c Component, props any, listener *Listener) ChildPlan {
	return ChildPlan{Component: c, Props: props, Listener: listener}
}

// PropsReceiver is implemented by every component whose props type is P.
type PropsReceiver[P any] interface {
	Component
	propsType() P
}

// ChildOf builds a ChildPlan whose props type is checked at compile time.
func ChildOf[P any](c PropsReceiver[P], props P, listener *Listener) ChildPlan {
	return ChildPlan{Component: c, Props: props, Listener: listener}
}

// Plan is a convenience constructor for a ChildrenPlan.
func Plan(children ...ChildPlan) ChildrenPlan {
	return ChildrenPlan(children)
}
