package core

import "time"

// Hook names a step the engine takes on a component.
type Hook string

const (
	HookPrePlacement  Hook = "prePlacement"
	HookAttach        Hook = "attach"
	HookPostPlacement Hook = "postPlacement"
	HookPreProps      Hook = "preProps"
	HookPostProps     Hook = "postProps"
	HookPreRemove     Hook = "preRemove"
	HookDetach        Hook = "detach"
	HookPostRemove    Hook = "postRemove"
	HookRenderSelf    Hook = "renderSelf"
	HookRenderPlan    Hook = "renderChildrenPlan"
	HookReconcile     Hook = "reconcile"
)

// ReconcileStats summarizes one diff-and-reconcile pass.
type ReconcileStats struct {
	OldSize int `json:"oldSize"`
	NewSize int `json:"newSize"`
	Matched int `json:"matched"`
	Removed int `json:"removed"`
	Added   int `json:"added"`
}

// Record is one engine step, delivered to observers synchronously on the UI
// thread in the order the steps happen.
type Record struct {
	ID        string          `json:"id"`
	Component string          `json:"component"`
	Hook      Hook            `json:"hook"`
	Stats     *ReconcileStats `json:"stats,omitempty"`
	Time      time.Time       `json:"time"`
}

// Observer receives engine records. Implementations must not call back into
// the engine.
type Observer interface {
	Observe(Record)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(Record)

func (f ObserverFunc) Observe(r Record) { f(r) }
