package testing

import (
	"strconv"
	"testing"

	"github.com/progressit/progressive/pkg/components"
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// counter shows a number and a button that increments it.
type counter struct {
	core.Base[int, int]
	core.ChildrenPartitioned[int]
	core.NoopLifecycle
	box      *toolkit.Container
	label    *components.Label
	button   *components.Button
	listener *core.Listener
}

func newCounter(placers core.Placers, rt *core.Runtime) *counter {
	c := &counter{box: toolkit.NewContainer("counter")}
	inner := components.ContainerPlacers(c.box)
	c.label = components.NewLabel(inner, rt)
	c.button = components.NewButton(inner, rt)
	c.listener = core.On(core.NewListener(), func(components.ButtonClicked) {
		c.SetData(c.Data() + 1)
	})
	c.MustInit(c, placers, rt)
	return c
}

func (c *counter) Widget() core.Widget              { return c.box }
func (c *counter) RenderSelf(int)                   {}
func (c *counter) Lifecycle() core.LifecycleHandler { return c }
func (c *counter) EmittedEvents() []core.EventKind  { return nil }
func (c *counter) PostProps()                       { c.SetData(c.Props()) }

func (c *counter) RenderChildrenPlan(n int) core.ChildrenPlan {
	return core.Plan(
		core.ChildOf[string](c.label, strconv.Itoa(n), nil),
		core.ChildOf(c.button, components.ButtonProps{Text: "+"}, c.listener),
	)
}

func TestNewHarness_BindsThread(t *testing.T) {
	h := NewHarnessWithT(t)
	if !h.Executor().OnThread() {
		t.Fatal("expected test goroutine to be the UI thread")
	}
	if h.Runtime() == nil {
		t.Fatal("expected runtime")
	}
	if h.GlobalBus() != h.Runtime().GlobalBus() {
		t.Error("expected harness global bus to be wired into the runtime")
	}
}

func TestPlace_MountsIntoRoot(t *testing.T) {
	h := NewHarnessWithT(t)
	c := newCounter(h.Placers(), h.Runtime())
	h.Place(c, nil, 3)

	if h.Root().Len() != 1 {
		t.Fatalf("expected 1 root child, got %d", h.Root().Len())
	}
	if got := h.Find(ByKind("label")).Text(); got != "3" {
		t.Errorf("expected label '3', got %q", got)
	}
}

func TestInteraction_ReusesChildren(t *testing.T) {
	h := NewHarnessWithT(t)
	c := newCounter(h.Placers(), h.Runtime())
	h.Place(c, nil, 0)
	h.ResetRecords()

	button := h.Find(ByType[*toolkit.Button]()).First().(*toolkit.Button)
	button.Fire()
	button.Fire()

	if got := h.Find(ByKind("label")).Text(); got != "2" {
		t.Errorf("expected label '2', got %q", got)
	}
	if n := h.Count(c.label, core.HookPrePlacement); n != 0 {
		t.Errorf("expected label to be reused, got %d placements", n)
	}
	if n := h.Count(c.label, core.HookRenderSelf); n != 2 {
		t.Errorf("expected 2 label renders, got %d", n)
	}
	if n := h.Count(c.button, core.HookRenderSelf); n != 0 {
		t.Errorf("expected no button renders for unchanged props, got %d", n)
	}
}

func TestHooks_PlacementOrder(t *testing.T) {
	h := NewHarnessWithT(t)
	l := components.NewLabel(h.Placers(), h.Runtime())
	h.Place(l, nil, "x")

	want := []core.Hook{
		core.HookPrePlacement, core.HookAttach, core.HookPostPlacement,
		core.HookPreProps, core.HookPostProps,
		core.HookRenderSelf, core.HookRenderPlan, core.HookReconcile,
	}
	got := h.Hooks(l)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hook %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRemove_DetachesFromRoot(t *testing.T) {
	h := NewHarnessWithT(t)
	l := components.NewLabel(h.Placers(), h.Runtime())
	h.Place(l, nil, "x")
	h.Remove(l)

	if h.Root().Len() != 0 {
		t.Errorf("expected empty root, got %d children", h.Root().Len())
	}
	if h.Count(l, core.HookPostRemove) != 1 {
		t.Error("expected postRemove")
	}
}

func TestDrain_RunsPostedTasks(t *testing.T) {
	h := NewHarnessWithT(t)
	ran := false
	if err := h.Executor().Post(func() { ran = true }); err != nil {
		t.Fatal(err)
	}
	if n := h.Drain(); n != 1 {
		t.Errorf("expected 1 task, got %d", n)
	}
	if !ran {
		t.Error("expected posted task to run")
	}
}
