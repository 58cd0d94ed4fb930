package jsonfmt

import (
	"github.com/progressit/progressive/pkg/components"
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// FormattedKind is published on the global bus after every format.
const FormattedKind core.EventKind = "jsonfmt.formatted"

// Formatted reports one formatting result. Err is empty on success.
type Formatted struct {
	Output string
	Err    string
}

func (Formatted) Kind() core.EventKind { return FormattedKind }

// Data is the formatter app's state.
type Data struct {
	InputJSON      string
	PrettyPrint    bool
	SerializeNulls bool
}

func (d Data) WithInputJSON(s string) Data {
	d.InputJSON = s
	return d
}

func (d Data) WithPrettyPrint(b bool) Data {
	d.PrettyPrint = b
	return d
}

func (d Data) WithSerializeNulls(b bool) Data {
	d.SerializeNulls = b
	return d
}

// Options returns the formatting options d selects.
func (d Data) Options() Options {
	return Options{PrettyPrint: d.PrettyPrint, SerializeNulls: d.SerializeNulls}
}

// App is the formatter: an input pane, a read-only output pane and the two
// option check boxes. Its props are the initial options.
type App struct {
	core.Base[Data, Options]
	core.ChildrenPartitioned[Data]

	box    *toolkit.Container
	input  *components.TextArea
	output *components.TextArea
	pretty *components.CheckBox
	nulls  *components.CheckBox

	onInput  *core.Listener
	onPretty *core.Listener
	onNulls  *core.Listener
	hooks    core.LifecycleFuncs
}

// NewApp creates the formatter app placed through placers.
func NewApp(placers core.Placers, rt *core.Runtime) *App {
	a := &App{box: toolkit.NewVBox("jsonfmt", 4)}
	inner := components.ContainerPlacers(a.box)
	a.input = components.NewTextArea(inner, rt)
	a.output = components.NewTextArea(inner, rt)
	a.pretty = components.NewCheckBox(inner, rt)
	a.nulls = components.NewCheckBox(inner, rt)

	a.onInput = core.On(core.NewListener(), func(e components.TextAreaChanged) {
		a.SetData(a.Data().WithInputJSON(e.Text))
	})
	a.onPretty = core.On(core.NewListener(), func(e components.CheckBoxToggled) {
		a.SetData(a.Data().WithPrettyPrint(e.Checked))
	})
	a.onNulls = core.On(core.NewListener(), func(e components.CheckBoxToggled) {
		a.SetData(a.Data().WithSerializeNulls(e.Checked))
	})

	a.hooks = core.LifecycleFuncs{
		PostPropsFunc: func() {
			opts := a.Props()
			a.SetData(a.Data().WithPrettyPrint(opts.PrettyPrint).WithSerializeNulls(opts.SerializeNulls))
		},
	}
	a.MustInit(a, placers, rt)
	return a
}

func (a *App) Widget() core.Widget              { return a.box }
func (a *App) Lifecycle() core.LifecycleHandler { return &a.hooks }
func (a *App) EmittedEvents() []core.EventKind  { return nil }
func (a *App) RenderSelf(Data)                  {}

func (a *App) RenderChildrenPlan(d Data) core.ChildrenPlan {
	out, err := Format(d.InputJSON, d.Options())
	result := Formatted{Output: out}
	if err != nil {
		a.Logger().Debug("input does not parse", "error", err)
		out = err.Error()
		result = Formatted{Err: out}
	}
	if g := a.GlobalBus(); g != nil {
		g.Publish(result)
	}

	return core.Plan(
		core.ChildOf(a.input, components.TextAreaProps{Text: d.InputJSON}, a.onInput),
		core.ChildOf(a.output, components.TextAreaProps{Text: out, ReadOnly: true}, nil),
		core.ChildOf(a.pretty, components.CheckBoxProps{Text: "Pretty Print", Checked: d.PrettyPrint}, a.onPretty),
		core.ChildOf(a.nulls, components.CheckBoxProps{Text: "Serialize Nulls", Checked: d.SerializeNulls}, a.onNulls),
	)
}

// SetInput replaces the input text as if it had been typed.
func (a *App) SetInput(text string) {
	a.SetData(a.Data().WithInputJSON(text))
}

// Output returns the text of the output pane.
func (a *App) Output() string { return a.output.Toolkit().Text() }

// InputArea returns the input pane's widget.
func (a *App) InputArea() *toolkit.TextArea { return a.input.Toolkit() }

// OutputArea returns the output pane's widget.
func (a *App) OutputArea() *toolkit.TextArea { return a.output.Toolkit() }

// PrettyPrintBox returns the pretty print check box.
func (a *App) PrettyPrintBox() *toolkit.CheckBox { return a.pretty.Toolkit() }

// SerializeNullsBox returns the serialize nulls check box.
func (a *App) SerializeNullsBox() *toolkit.CheckBox { return a.nulls.Toolkit() }
