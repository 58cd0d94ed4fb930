package core

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/progressit/progressive/pkg/errors"
)

// Thread reports whether the caller runs on the UI thread.
// *uithread.Executor implements it.
type Thread interface {
	OnThread() bool
}

// Runtime carries the collaborators every component in a tree shares: the UI
// thread, logging, the global bus, metrics, tracing and observers.
type Runtime struct {
	thread    Thread
	logger    *slog.Logger
	global    *GlobalBus
	metrics   *Metrics
	tracer    trace.Tracer
	observers []Observer

	// spanCtx is the context of the innermost active span. The engine is
	// single-threaded, so nested cascades simply save and restore it.
	spanCtx context.Context
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(r *Runtime) { r.logger = logger }
}

// WithGlobalBus sets the process-wide bus components may publish on.
func WithGlobalBus(bus *GlobalBus) RuntimeOption {
	return func(r *Runtime) { r.global = bus }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) RuntimeOption {
	return func(r *Runtime) { r.metrics = m }
}

// WithTracer sets the tracer. Defaults to otel.Tracer("progressive"), which
// is a no-op until a provider is installed.
func WithTracer(t trace.Tracer) RuntimeOption {
	return func(r *Runtime) { r.tracer = t }
}

// WithObserver adds an observer of engine records.
func WithObserver(o Observer) RuntimeOption {
	return func(r *Runtime) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// NewRuntime creates a runtime bound to thread.
func NewRuntime(thread Thread, opts ...RuntimeOption) (*Runtime, error) {
	if thread == nil {
		return nil, errors.New("core.NewRuntime", errors.KindConfig, "", errors.ErrMissingCollaborator)
	}
	r := &Runtime{
		thread:  thread,
		spanCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("progressive")
	}
	return r, nil
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

// GlobalBus returns the global bus, or nil when none was configured.
func (r *Runtime) GlobalBus() *GlobalBus {
	return r.global
}

// Thread returns the UI thread the runtime is bound to.
func (r *Runtime) Thread() Thread {
	return r.thread
}

func (r *Runtime) observe(n *node, hook Hook, stats *ReconcileStats) {
	if len(r.observers) == 0 {
		return
	}
	rec := Record{ID: n.id, Component: n.typeName, Hook: hook, Stats: stats, Time: time.Now()}
	for _, o := range r.observers {
		o.Observe(rec)
	}
}

func (r *Runtime) startSpan(name string, opts ...trace.SpanStartOption) (trace.Span, func()) {
	ctx, span := r.tracer.Start(r.spanCtx, name, opts...)
	prev := r.spanCtx
	r.spanCtx = ctx
	return span, func() {
		r.spanCtx = prev
		span.End()
	}
}
