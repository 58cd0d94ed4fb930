// Package uithread provides the single-threaded executor every progressive
// engine operation runs on.
//
// An Executor owns one worker goroutine (the "UI thread") that drains a FIFO
// task queue. Code running on any goroutine may Post or Invoke work; engine
// operations themselves check OnThread and refuse to run elsewhere.
//
//	exec := uithread.New()
//	if err := exec.Start(ctx); err != nil {
//	    return err
//	}
//	defer exec.Close()
//
//	err := exec.Invoke(ctx, func() {
//	    core.Place(root, listener, props)
//	})
//
// Synchronous hosts and tests can bind the calling goroutine instead of
// starting a loop, then run queued work with Drain:
//
//	exec := uithread.New()
//	exec.Bind()
//	exec.Post(task)
//	exec.Drain()
package uithread

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/progressit/progressive/pkg/errors"
)

// DefaultQueueSize is the task queue capacity used when none is configured.
const DefaultQueueSize = 256

var (
	// ErrClosed is returned when work is submitted to a closed executor.
	ErrClosed = stderrors.New("uithread: executor closed")
	// ErrQueueFull is returned by Post when the task queue is at capacity.
	ErrQueueFull = stderrors.New("uithread: task queue full")
	// ErrAlreadyBound is returned when a second goroutine tries to become the UI thread.
	ErrAlreadyBound = stderrors.New("uithread: executor already bound to a goroutine")
	// ErrNotOnThread is returned by Drain when called off the UI thread.
	ErrNotOnThread = stderrors.New("uithread: not on the UI thread")
)

// Executor serializes work onto a single goroutine.
type Executor struct {
	tasks     chan func()
	done      chan struct{}
	bound     chan struct{}
	closeOnce sync.Once
	bindOnce  sync.Once
	gid       atomic.Uint64
	closed    atomic.Bool
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithQueueSize sets the task queue capacity.
func WithQueueSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.tasks = make(chan func(), n)
		}
	}
}

// WithLogger sets the logger used for dropped work and recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an unbound executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		tasks:  make(chan func(), DefaultQueueSize),
		done:   make(chan struct{}),
		bound:  make(chan struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "uithread")
	return e
}

// Bind makes the calling goroutine the UI thread without starting a loop.
func (e *Executor) Bind() error {
	if !e.gid.CompareAndSwap(0, goid()) {
		return ErrAlreadyBound
	}
	e.bindOnce.Do(func() { close(e.bound) })
	return nil
}

// Run binds the calling goroutine as the UI thread and drains tasks until
// ctx is done or Close is called.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.Bind(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return nil
		case fn := <-e.tasks:
			e.runTask(fn)
		}
	}
}

// Start runs the executor loop on a new goroutine and returns once it is bound.
func (e *Executor) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		if err := e.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			errc <- err
		}
	}()
	select {
	case <-e.bound:
		return nil
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnThread reports whether the caller is running on the UI thread.
func (e *Executor) OnThread() bool {
	id := e.gid.Load()
	return id != 0 && id == goid()
}

// Post enqueues fn to run on the UI thread. It never blocks.
func (e *Executor) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if e.closed.Load() {
		return ErrClosed
	}
	select {
	case e.tasks <- fn:
		return nil
	default:
		e.logger.Warn("task queue full, discarding task")
		return ErrQueueFull
	}
}

// Invoke runs fn on the UI thread and waits for it to finish. When called
// from the UI thread it runs inline. A panic inside fn is recovered, reported
// to the error handler and returned as an error; engine errors come back as
// *errors.ComponentError.
func (e *Executor) Invoke(ctx context.Context, fn func()) error {
	if fn == nil {
		return nil
	}
	if e.OnThread() {
		return errors.Guard("uithread.Invoke", fn)
	}
	result := make(chan error, 1)
	if err := e.Post(func() { result <- errors.Guard("uithread.Invoke", fn) }); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrClosed
	}
}

// Drain runs every queued task inline and returns how many ran.
// It must be called on the UI thread.
func (e *Executor) Drain() (int, error) {
	if !e.OnThread() {
		return 0, ErrNotOnThread
	}
	n := 0
	for {
		select {
		case fn := <-e.tasks:
			e.runTask(fn)
			n++
		default:
			return n, nil
		}
	}
}

// Pending returns the number of queued tasks.
func (e *Executor) Pending() int {
	return len(e.tasks)
}

// Close stops the loop. Queued tasks that have not run are discarded.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.done)
	})
}

// Done is closed once Close has been called.
func (e *Executor) Done() <-chan struct{} {
	return e.done
}

// runTask runs a posted task. A panic is reported and logged and the loop
// keeps going, engine errors included: nobody is waiting for the result.
func (e *Executor) runTask(fn func()) {
	if err := errors.Guard("uithread.task", fn); err != nil {
		e.logger.Error("task panicked", "error", err)
	}
}

// goid returns the current goroutine's id, parsed from the stack header
// ("goroutine 18 [running]:").
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, _ := strconv.ParseUint(string(s), 10, 64)
	return id
}
