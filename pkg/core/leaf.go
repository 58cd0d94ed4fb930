package core

// Leaf is the base for components that have no children, typically a thin
// binding around one native widget. All data affects the own widget and the
// children plan is always empty.
//
// A leaf only needs Widget, RenderSelf, Lifecycle and EmittedEvents.
type Leaf[D, P any] struct {
	Base[D, P]
	SelfPartitioned[D]
}

// RenderChildrenPlan returns an empty plan.
func (*Leaf[D, P]) RenderChildrenPlan(D) ChildrenPlan {
	return nil
}
