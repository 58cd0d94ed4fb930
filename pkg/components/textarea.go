package components

import (
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// TextAreaChangedKind is posted when the user edits the text.
const TextAreaChangedKind core.EventKind = "textArea.changed"

// TextAreaChanged carries the edited text.
type TextAreaChanged struct{ Text string }

func (TextAreaChanged) Kind() core.EventKind { return TextAreaChangedKind }

// TextAreaProps configures a TextArea.
type TextAreaProps struct {
	Text     string
	ReadOnly bool
}

// TextArea is a multi-line input, or a read-only output pane.
type TextArea struct {
	core.Leaf[TextAreaProps, TextAreaProps]
	widget    *toolkit.TextArea
	hooks     core.LifecycleFuncs
	rendering bool
}

// NewTextArea creates a text area placed through placers.
func NewTextArea(placers core.Placers, rt *core.Runtime) *TextArea {
	a := &TextArea{widget: toolkit.NewTextArea()}
	a.hooks = core.LifecycleFuncs{
		PrePlacementFunc: func() {
			a.widget.SetOnChange(func(_, next string) {
				if !a.rendering {
					a.Post(TextAreaChanged{Text: next})
				}
			})
		},
		PostPropsFunc:  func() { a.SetData(a.Props()) },
		PostRemoveFunc: func() { a.widget.SetOnChange(nil) },
	}
	a.MustInit(a, placers, rt)
	return a
}

func (a *TextArea) Widget() core.Widget              { return a.widget }
func (a *TextArea) Lifecycle() core.LifecycleHandler { return &a.hooks }
func (a *TextArea) EmittedEvents() []core.EventKind  { return []core.EventKind{TextAreaChangedKind} }

// Toolkit returns the underlying widget.
func (a *TextArea) Toolkit() *toolkit.TextArea { return a.widget }

func (a *TextArea) RenderSelf(p TextAreaProps) {
	a.widget.SetEditable(!p.ReadOnly)
	if a.widget.Text() == p.Text {
		return
	}
	a.rendering = true
	defer func() { a.rendering = false }()
	a.widget.SetText(p.Text)
}
