package core

// LifecycleHandler receives the six lifecycle hooks of a component.
//
// Return the same handler instance from every Lifecycle call; the engine asks
// for it on each transition and does not cache it.
type LifecycleHandler interface {
	PrePlacement()
	PostPlacement()
	PreProps()
	PostProps()
	PreRemove()
	PostRemove()
}

// NoopLifecycle implements every hook as a no-op. Embed it and override only
// the hooks you need.
type NoopLifecycle struct{}

func (NoopLifecycle) PrePlacement()  {}
func (NoopLifecycle) PostPlacement() {}
func (NoopLifecycle) PreProps()      {}
func (NoopLifecycle) PostProps()     {}
func (NoopLifecycle) PreRemove()     {}
func (NoopLifecycle) PostRemove()    {}

// LifecycleFuncs adapts optional functions to a LifecycleHandler.
// Nil fields are skipped.
//
//	func (b *Button) Lifecycle() core.LifecycleHandler {
//	    return &b.hooks // built once in the constructor
//	}
//
//	b.hooks = core.LifecycleFuncs{
//	    PostPropsFunc: func() { b.SetData(b.Props()) },
//	}
type LifecycleFuncs struct {
	PrePlacementFunc  func()
	PostPlacementFunc func()
	PrePropsFunc      func()
	PostPropsFunc     func()
	PreRemoveFunc     func()
	PostRemoveFunc    func()
}

func (l *LifecycleFuncs) PrePlacement()  { call(l.PrePlacementFunc) }
func (l *LifecycleFuncs) PostPlacement() { call(l.PostPlacementFunc) }
func (l *LifecycleFuncs) PreProps()      { call(l.PrePropsFunc) }
func (l *LifecycleFuncs) PostProps()     { call(l.PostPropsFunc) }
func (l *LifecycleFuncs) PreRemove()     { call(l.PreRemoveFunc) }
func (l *LifecycleFuncs) PostRemove()    { call(l.PostRemoveFunc) }

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// lifecycleOf returns c's handler, substituting a no-op for nil.
func lifecycleOf(c Component) LifecycleHandler {
	if lc := c.Lifecycle(); lc != nil {
		return lc
	}
	return NoopLifecycle{}
}
