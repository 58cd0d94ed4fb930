package core_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/uithread"
)

// textWidget stands in for a native label.
type textWidget struct{ text string }

// counter is a leaf that shows its props.
type counter struct {
	core.Leaf[int, int]
	widget *textWidget
	hooks  core.LifecycleFuncs
}

func newCounter(placers core.Placers, rt *core.Runtime) *counter {
	c := &counter{widget: &textWidget{}}
	c.hooks.PostPropsFunc = func() { c.SetData(c.Props()) }
	c.MustInit(c, placers, rt)
	return c
}

func (c *counter) Widget() core.Widget              { return c.widget }
func (c *counter) Lifecycle() core.LifecycleHandler { return &c.hooks }
func (c *counter) EmittedEvents() []core.EventKind  { return nil }
func (c *counter) RenderSelf(n int) {
	c.widget.text = fmt.Sprintf("count: %d", n)
	fmt.Println("render", c.widget.text)
}

// This example places a leaf component and updates its props. Setting the
// same value again renders nothing.
func ExamplePlace() {
	exec := uithread.New()
	exec.Bind()
	defer exec.Close()

	rt, _ := core.NewRuntime(exec, core.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	placers := core.Placers{
		Attach: func(core.Widget) { fmt.Println("attached") },
		Detach: func(core.Widget) { fmt.Println("detached") },
	}

	c := newCounter(placers, rt)
	core.Place(c, nil, 1)
	c.SetProps(2)
	c.SetProps(2)
	core.Remove(c)

	// Output:
	// attached
	// render count: 1
	// render count: 2
	// detached
}

// This example shows that fingerprints compare as sets.
func ExampleFingerprintOf() {
	a := core.FingerprintOf("title", 3)
	b := core.FingerprintOf(3, "title")

	fmt.Println(a.Equal(b))
	fmt.Println(core.NoData().Equal(core.AllData("title")))

	// Output:
	// true
	// false
}

// This example binds a listener with a typed handler.
func ExampleOn() {
	bus := core.NewBus(saved{}.Kind())
	bus.SetListener(core.On(core.NewListener(), func(e saved) {
		fmt.Println("saved", e.name)
	}))

	d, _ := bus.Post(saved{name: "draft"})
	fmt.Println(d)

	bus.ClearListener()
	d, _ = bus.Post(saved{name: "draft"})
	fmt.Println(d)

	// Output:
	// saved draft
	// delivered
	// no_listener
}

type saved struct{ name string }

func (saved) Kind() core.EventKind { return "example.saved" }

// This example publishes on the global bus.
func ExampleGlobalBus() {
	g := core.NewGlobalBus()
	unsubscribe := g.Subscribe(saved{}.Kind(), func(e core.Event) {
		fmt.Println("first", e.(saved).name)
	})
	g.Subscribe(saved{}.Kind(), func(e core.Event) {
		fmt.Println("second", e.(saved).name)
	})

	fmt.Println(g.Publish(saved{name: "a"}))
	unsubscribe()
	fmt.Println(g.Publish(saved{name: "b"}))

	// Output:
	// first a
	// second a
	// 2
	// second b
	// 1
}
