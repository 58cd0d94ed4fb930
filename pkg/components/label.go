package components

import (
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// Label shows its props as text.
type Label struct {
	core.Leaf[string, string]
	widget *toolkit.Label
	hooks  core.LifecycleFuncs
}

// NewLabel creates a label placed through placers.
func NewLabel(placers core.Placers, rt *core.Runtime) *Label {
	l := &Label{widget: toolkit.NewLabel("")}
	l.hooks = core.LifecycleFuncs{
		PostPropsFunc: func() { l.SetData(l.Props()) },
	}
	l.MustInit(l, placers, rt)
	return l
}

func (l *Label) Widget() core.Widget              { return l.widget }
func (l *Label) Lifecycle() core.LifecycleHandler { return &l.hooks }
func (l *Label) EmittedEvents() []core.EventKind  { return nil }
func (l *Label) RenderSelf(text string)           { l.widget.SetText(text) }

// Toolkit returns the underlying widget.
func (l *Label) Toolkit() *toolkit.Label { return l.widget }
