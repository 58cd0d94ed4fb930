// Package components binds toolkit widgets to the component engine.
//
// Every binding is a leaf: props are folded straight into data in PostProps,
// RenderSelf pushes data into the widget, and widget callbacks are turned
// into declared events. Text bindings compare before setting and ignore the
// change callbacks their own renders cause.
package components
