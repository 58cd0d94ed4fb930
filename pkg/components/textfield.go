package components

import (
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

const (
	// TextFieldActionKind is posted when the user submits the field.
	TextFieldActionKind core.EventKind = "textField.action"
	// TextFieldChangedKind is posted when the user edits the text.
	TextFieldChangedKind core.EventKind = "textField.changed"
)

// TextFieldAction carries the text at the time of submission.
type TextFieldAction struct{ Text string }

func (TextFieldAction) Kind() core.EventKind { return TextFieldActionKind }

// TextFieldChanged carries the edited text.
type TextFieldChanged struct{ Text string }

func (TextFieldChanged) Kind() core.EventKind { return TextFieldChangedKind }

// TextFieldProps configures a TextField.
type TextFieldProps struct {
	Text   string
	Prompt string
}

// TextField is a single-line input. Its parent owns the text: edits are
// reported with TextFieldChanged and come back as props.
type TextField struct {
	core.Leaf[TextFieldProps, TextFieldProps]
	widget    *toolkit.TextField
	hooks     core.LifecycleFuncs
	rendering bool
}

// NewTextField creates a text field placed through placers.
func NewTextField(placers core.Placers, rt *core.Runtime) *TextField {
	f := &TextField{widget: toolkit.NewTextField()}
	f.hooks = core.LifecycleFuncs{
		PrePlacementFunc: func() {
			f.widget.SetOnAction(func() { f.Post(TextFieldAction{Text: f.widget.Text()}) })
			f.widget.SetOnChange(func(_, next string) {
				if !f.rendering {
					f.Post(TextFieldChanged{Text: next})
				}
			})
		},
		PostPropsFunc: func() { f.SetData(f.Props()) },
		PostRemoveFunc: func() {
			f.widget.SetOnAction(nil)
			f.widget.SetOnChange(nil)
		},
	}
	f.MustInit(f, placers, rt)
	return f
}

func (f *TextField) Widget() core.Widget              { return f.widget }
func (f *TextField) Lifecycle() core.LifecycleHandler { return &f.hooks }

func (f *TextField) EmittedEvents() []core.EventKind {
	return []core.EventKind{TextFieldActionKind, TextFieldChangedKind}
}

// Toolkit returns the underlying widget.
func (f *TextField) Toolkit() *toolkit.TextField { return f.widget }

func (f *TextField) RenderSelf(p TextFieldProps) {
	f.widget.SetPrompt(p.Prompt)
	if f.widget.Text() == p.Text {
		return
	}
	f.rendering = true
	defer func() { f.rendering = false }()
	f.widget.SetText(p.Text)
}
