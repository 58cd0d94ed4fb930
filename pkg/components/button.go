package components

import (
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// ButtonClickedKind is posted when the button is clicked.
const ButtonClickedKind core.EventKind = "button.clicked"

// ButtonClicked is posted on every click of an enabled button.
type ButtonClicked struct{}

func (ButtonClicked) Kind() core.EventKind { return ButtonClickedKind }

// ButtonProps configures a Button.
type ButtonProps struct {
	Text     string
	Disabled bool
}

// Button is a push button.
type Button struct {
	core.Leaf[ButtonProps, ButtonProps]
	widget *toolkit.Button
	hooks  core.LifecycleFuncs
}

// NewButton creates a button placed through placers.
func NewButton(placers core.Placers, rt *core.Runtime) *Button {
	b := &Button{widget: toolkit.NewButton("")}
	b.hooks = core.LifecycleFuncs{
		PrePlacementFunc: func() {
			b.widget.SetOnAction(func() { b.Post(ButtonClicked{}) })
		},
		PostPropsFunc: func() { b.SetData(b.Props()) },
		PostRemoveFunc: func() {
			b.widget.SetOnAction(nil)
		},
	}
	b.MustInit(b, placers, rt)
	return b
}

func (b *Button) Widget() core.Widget              { return b.widget }
func (b *Button) Lifecycle() core.LifecycleHandler { return &b.hooks }
func (b *Button) EmittedEvents() []core.EventKind  { return []core.EventKind{ButtonClickedKind} }

// Toolkit returns the underlying widget.
func (b *Button) Toolkit() *toolkit.Button { return b.widget }

func (b *Button) RenderSelf(p ButtonProps) {
	b.widget.SetText(p.Text)
	b.widget.SetDisabled(p.Disabled)
}
