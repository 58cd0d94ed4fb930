package uithread

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/progressit/progressive/pkg/errors"
)

func startExecutor(t *testing.T, opts ...Option) *Executor {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	exec := New(opts...)
	require.NoError(t, exec.Start(ctx))
	t.Cleanup(func() {
		exec.Close()
		cancel()
	})
	return exec
}

func TestExecutor_InvokeRunsOnWorker(t *testing.T) {
	exec := startExecutor(t)

	require.False(t, exec.OnThread(), "test goroutine must not be the UI thread")

	var onThread bool
	err := exec.Invoke(context.Background(), func() {
		onThread = exec.OnThread()
	})
	require.NoError(t, err)
	require.True(t, onThread)
}

func TestExecutor_PostPreservesOrder(t *testing.T) {
	exec := startExecutor(t)

	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 10; i++ {
		require.NoError(t, exec.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	// Invoke queues behind the posted tasks.
	require.NoError(t, exec.Invoke(context.Background(), func() {}))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestExecutor_InvokeInlineOnThread(t *testing.T) {
	exec := startExecutor(t)

	var order []string
	err := exec.Invoke(context.Background(), func() {
		order = append(order, "outer")
		// A nested Invoke must not deadlock waiting on its own worker.
		require.NoError(t, exec.Invoke(context.Background(), func() {
			order = append(order, "inner")
		}))
		order = append(order, "after")
	})
	require.NoError(t, err)
	require.Equal(t, []string{"outer", "inner", "after"}, order)
}

func TestExecutor_InvokeReturnsPanic(t *testing.T) {
	exec := startExecutor(t)

	err := exec.Invoke(context.Background(), func() {
		panic("boom")
	})
	var pe *errors.PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "boom", pe.Value)

	// The worker survives and keeps serving.
	require.NoError(t, exec.Invoke(context.Background(), func() {}))
}

func TestExecutor_InvokePassesComponentErrorThrough(t *testing.T) {
	exec := startExecutor(t)

	err := exec.Invoke(context.Background(), func() {
		panic(errors.New("core.Post", errors.KindUndeclaredEvent, "", errors.ErrUndeclaredEvent))
	})
	var ce *errors.ComponentError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, errors.KindUndeclaredEvent, ce.Kind)
	require.ErrorIs(t, err, errors.ErrUndeclaredEvent)
}

func TestExecutor_PostedPanicIsReported(t *testing.T) {
	var (
		mu       sync.Mutex
		captured *errors.PanicError
	)
	old := errors.SetHandler(&panicRecorder{fn: func(p *errors.PanicError) {
		mu.Lock()
		captured = p
		mu.Unlock()
	}})
	defer errors.SetHandler(old)

	exec := startExecutor(t)
	require.NoError(t, exec.Post(func() { panic("posted") }))
	require.NoError(t, exec.Invoke(context.Background(), func() {}))

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, captured)
	require.Equal(t, "uithread.task", captured.Op)
}

func TestExecutor_InvokePanicIsReported(t *testing.T) {
	var captured *errors.PanicError
	old := errors.SetHandler(&panicRecorder{fn: func(p *errors.PanicError) { captured = p }})
	defer errors.SetHandler(old)

	exec := New()
	require.NoError(t, exec.Bind())
	err := exec.Invoke(context.Background(), func() { panic("invoked") })

	require.Error(t, err)
	require.NotNil(t, captured)
	require.Equal(t, "uithread.Invoke", captured.Op)
	require.Equal(t, "invoked", captured.Value)
}

func TestExecutor_BindAndDrain(t *testing.T) {
	exec := New()
	require.NoError(t, exec.Bind())
	require.True(t, exec.OnThread())
	require.ErrorIs(t, exec.Bind(), ErrAlreadyBound)

	ran := 0
	require.NoError(t, exec.Post(func() { ran++ }))
	require.NoError(t, exec.Post(func() { ran++ }))
	require.Equal(t, 2, exec.Pending())

	n, err := exec.Drain()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, ran)
}

func TestExecutor_DrainOffThread(t *testing.T) {
	exec := startExecutor(t)
	_, err := exec.Drain()
	require.ErrorIs(t, err, ErrNotOnThread)
}

func TestExecutor_QueueFull(t *testing.T) {
	exec := New(WithQueueSize(1))
	require.NoError(t, exec.Post(func() {}))
	require.ErrorIs(t, exec.Post(func() {}), ErrQueueFull)
}

func TestExecutor_Closed(t *testing.T) {
	exec := startExecutor(t)
	exec.Close()

	require.ErrorIs(t, exec.Post(func() {}), ErrClosed)

	select {
	case <-exec.Done():
	case <-time.After(time.Second):
		t.Fatal("Done channel not closed")
	}
}

func TestExecutor_InvokeHonorsContext(t *testing.T) {
	exec := New() // never started: nothing drains the queue
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := exec.Invoke(ctx, func() {})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

type panicRecorder struct {
	errors.LogHandler
	fn func(*errors.PanicError)
}

func (r *panicRecorder) HandlePanic(err *errors.PanicError) {
	r.fn(err)
}
