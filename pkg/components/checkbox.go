package components

import (
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// CheckBoxToggledKind is posted when the user toggles the box.
const CheckBoxToggledKind core.EventKind = "checkBox.toggled"

// CheckBoxToggled carries the new state.
type CheckBoxToggled struct{ Checked bool }

func (CheckBoxToggled) Kind() core.EventKind { return CheckBoxToggledKind }

// CheckBoxProps configures a CheckBox.
type CheckBoxProps struct {
	Text    string
	Checked bool
}

// CheckBox is a labelled toggle.
type CheckBox struct {
	core.Leaf[CheckBoxProps, CheckBoxProps]
	widget *toolkit.CheckBox
	hooks  core.LifecycleFuncs
}

// NewCheckBox creates a check box placed through placers.
func NewCheckBox(placers core.Placers, rt *core.Runtime) *CheckBox {
	c := &CheckBox{widget: toolkit.NewCheckBox("")}
	c.hooks = core.LifecycleFuncs{
		PrePlacementFunc: func() {
			c.widget.SetOnAction(func() { c.Post(CheckBoxToggled{Checked: c.widget.Selected()}) })
		},
		PostPropsFunc:  func() { c.SetData(c.Props()) },
		PostRemoveFunc: func() { c.widget.SetOnAction(nil) },
	}
	c.MustInit(c, placers, rt)
	return c
}

func (c *CheckBox) Widget() core.Widget              { return c.widget }
func (c *CheckBox) Lifecycle() core.LifecycleHandler { return &c.hooks }
func (c *CheckBox) EmittedEvents() []core.EventKind  { return []core.EventKind{CheckBoxToggledKind} }

// Toolkit returns the underlying widget.
func (c *CheckBox) Toolkit() *toolkit.CheckBox { return c.widget }

func (c *CheckBox) RenderSelf(p CheckBoxProps) {
	c.widget.SetText(p.Text)
	if c.widget.Selected() != p.Checked {
		c.widget.SetSelected(p.Checked)
	}
}
