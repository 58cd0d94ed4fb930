package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/errors"
)

func TestFingerprint_SetEquality(t *testing.T) {
	require.True(t, core.FingerprintOf("a", 1).Equal(core.FingerprintOf(1, "a")))
	require.True(t, core.FingerprintOf("a", "a").Equal(core.FingerprintOf("a")))
	require.Equal(t, 1, core.FingerprintOf("a", "a").Len())
	require.False(t, core.FingerprintOf("a").Equal(core.FingerprintOf("b")))
	require.True(t, core.FingerprintOf([]int{1, 2}).Equal(core.FingerprintOf([]int{1, 2})))
	require.True(t, core.NoData().Equal(core.NoData()))
	require.False(t, core.AllData(1).Equal(core.NoData()))
}

func TestFingerprint_Partitions(t *testing.T) {
	var self core.SelfPartitioned[string]
	require.False(t, self.PartitionForSelf("a").Equal(self.PartitionForSelf("b")))
	require.True(t, self.PartitionForChildren("a").Equal(self.PartitionForChildren("b")))

	var children core.ChildrenPartitioned[string]
	require.True(t, children.PartitionForSelf("a").Equal(children.PartitionForSelf("b")))
	require.False(t, children.PartitionForChildren("a").Equal(children.PartitionForChildren("b")))
}

func TestBus_Post(t *testing.T) {
	bus := core.NewBus(clickedKind)
	require.True(t, bus.Declares(clickedKind))
	require.False(t, bus.Declares(undeclaredKind))

	d, err := bus.Post(clicked{})
	require.NoError(t, err)
	require.Equal(t, core.DroppedNoListener, d)

	_, err = bus.Post(undeclared{})
	require.ErrorIs(t, err, errors.ErrUndeclaredEvent)

	var got string
	bus.SetListener(core.On(core.NewListener(), func(c clicked) { got = c.Text }))
	d, err = bus.Post(clicked{Text: "x"})
	require.NoError(t, err)
	require.Equal(t, core.Delivered, d)
	require.Equal(t, "x", got)

	bus.SetListener(core.NewListener())
	d, _ = bus.Post(clicked{})
	require.Equal(t, core.DroppedNoHandler, d)
	require.Equal(t, "no_handler", d.String())

	bus.ClearListener()
	bus.ClearListener()
	require.Nil(t, bus.Listener())
}

// clickedCopy shares clicked's kind but is a different Go type.
type clickedCopy struct{}

func (clickedCopy) Kind() core.EventKind { return clickedKind }

func TestBus_TypedHandlerSkipsOtherTypes(t *testing.T) {
	bus := core.NewBus(clickedKind)
	calls := 0
	bus.SetListener(core.On(core.NewListener(), func(clicked) { calls++ }))

	d, err := bus.Post(clickedCopy{})
	require.NoError(t, err)
	require.Equal(t, core.DroppedNoHandler, d)
	require.Zero(t, calls)

	d, err = bus.Post(clicked{})
	require.NoError(t, err)
	require.Equal(t, core.Delivered, d)
	require.Equal(t, 1, calls)

	// Untyped handlers take every event of the kind.
	bus.SetListener(core.NewListener().Handle(clickedKind, func(core.Event) { calls++ }))
	d, _ = bus.Post(clickedCopy{})
	require.Equal(t, core.Delivered, d)
	require.Equal(t, 2, calls)
}

func TestListener_Handles(t *testing.T) {
	var nilListener *core.Listener
	require.False(t, nilListener.Handles(clickedKind))

	l := core.NewListener().Handle(clickedKind, func(core.Event) {})
	require.True(t, l.Handles(clickedKind))
	require.False(t, l.Handles(undeclaredKind))

	var zero core.Listener
	zero.Handle(clickedKind, func(core.Event) {})
	require.True(t, zero.Handles(clickedKind))
}

func TestGlobalBus_OrderAndUnsubscribe(t *testing.T) {
	g := core.NewGlobalBus()
	var order []int
	unsub1 := g.Subscribe(clickedKind, func(core.Event) { order = append(order, 1) })
	g.Subscribe(clickedKind, func(core.Event) { order = append(order, 2) })
	g.Subscribe(undeclaredKind, func(core.Event) { order = append(order, 3) })

	require.Equal(t, 2, g.Publish(clicked{}))
	require.Equal(t, []int{1, 2}, order)

	unsub1()
	order = nil
	require.Equal(t, 1, g.Publish(clicked{}))
	require.Equal(t, []int{2}, order)
}

func TestGlobalBus_Concurrent(t *testing.T) {
	g := core.NewGlobalBus()
	var mu sync.Mutex
	count := 0
	g.Subscribe(clickedKind, func(core.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := g.Subscribe(undeclaredKind, func(core.Event) {})
			g.Publish(clicked{})
			unsub()
		}()
	}
	wg.Wait()
	require.Equal(t, 8, count)
}
