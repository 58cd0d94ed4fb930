package testing

import (
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/progressit/progressive/pkg/components"
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
	"github.com/progressit/progressive/pkg/uithread"
)

// Harness runs component trees in isolation. It binds the goroutine that
// creates it as the UI thread, places components into a root container,
// records every engine step and exposes metrics through a private registry.
type Harness struct {
	exec     *uithread.Executor
	rt       *core.Runtime
	root     *toolkit.Container
	registry *prometheus.Registry
	global   *core.GlobalBus
	records  []core.Record
	placed   []core.Component
}

// Option configures a Harness.
type Option func(*harnessConfig)

type harnessConfig struct {
	logger    *slog.Logger
	observers []core.Observer
}

// WithLogger routes engine logs to logger. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *harnessConfig) { c.logger = logger }
}

// WithObserver adds an observer next to the harness's own recorder.
func WithObserver(o core.Observer) Option {
	return func(c *harnessConfig) { c.observers = append(c.observers, o) }
}

// NewHarness creates a harness bound to the calling goroutine.
// Call Cleanup when done, or use NewHarnessWithT instead.
func NewHarness(opts ...Option) (*Harness, error) {
	cfg := harnessConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Harness{
		exec:     uithread.New(uithread.WithLogger(cfg.logger)),
		root:     toolkit.NewVBox("root", 0),
		registry: prometheus.NewRegistry(),
		global:   core.NewGlobalBus(),
	}
	if err := h.exec.Bind(); err != nil {
		return nil, err
	}

	rtOpts := []core.RuntimeOption{
		core.WithLogger(cfg.logger),
		core.WithGlobalBus(h.global),
		core.WithMetrics(core.NewMetrics(core.WithMetricsRegistry(h.registry))),
		core.WithObserver(core.ObserverFunc(func(r core.Record) {
			h.records = append(h.records, r)
		})),
	}
	for _, o := range cfg.observers {
		rtOpts = append(rtOpts, core.WithObserver(o))
	}
	rt, err := core.NewRuntime(h.exec, rtOpts...)
	if err != nil {
		h.exec.Close()
		return nil, err
	}
	h.rt = rt
	return h, nil
}

// NewHarnessWithT creates a harness that cleans up via t.Cleanup.
// This is the recommended constructor for tests.
func NewHarnessWithT(t *testing.T, opts ...Option) *Harness {
	t.Helper()
	h, err := NewHarness(opts...)
	if err != nil {
		t.Fatalf("harness: %v", err)
	}
	t.Cleanup(h.Cleanup)
	return h
}

// Cleanup removes every component still placed, newest first, and closes
// the executor.
func (h *Harness) Cleanup() {
	for i := len(h.placed) - 1; i >= 0; i-- {
		core.Remove(h.placed[i])
	}
	h.placed = nil
	h.exec.Close()
}

// Runtime returns the runtime components should be constructed with.
func (h *Harness) Runtime() *core.Runtime { return h.rt }

// Executor returns the harness's UI thread.
func (h *Harness) Executor() *uithread.Executor { return h.exec }

// Root returns the root container.
func (h *Harness) Root() *toolkit.Container { return h.root }

// Placers returns placers for the root container.
func (h *Harness) Placers() core.Placers { return components.ContainerPlacers(h.root) }

// Registry returns the registry engine metrics are registered with.
func (h *Harness) Registry() *prometheus.Registry { return h.registry }

// GlobalBus returns the runtime's global bus.
func (h *Harness) GlobalBus() *core.GlobalBus { return h.global }

// Place places c as a root component, then drains posted tasks.
func (h *Harness) Place(c core.Component, listener *core.Listener, props any) {
	core.Place(c, listener, props)
	h.placed = append(h.placed, c)
	h.Drain()
}

// Remove removes a component placed with Place.
func (h *Harness) Remove(c core.Component) {
	core.Remove(c)
	h.placed = slices.DeleteFunc(h.placed, func(x core.Component) bool { return x == c })
	h.Drain()
}

// Drain runs tasks posted to the executor and returns how many ran.
func (h *Harness) Drain() int {
	n, _ := h.exec.Drain()
	return n
}

// Records returns every engine step since creation or the last ResetRecords.
func (h *Harness) Records() []core.Record {
	return slices.Clone(h.records)
}

// ResetRecords forgets recorded steps.
func (h *Harness) ResetRecords() { h.records = nil }

// Hooks returns the steps recorded for c, in order.
func (h *Harness) Hooks(c core.Component) []core.Hook {
	id := core.ID(c)
	var out []core.Hook
	for _, r := range h.records {
		if r.ID == id {
			out = append(out, r.Hook)
		}
	}
	return out
}

// Count returns how many times hook was recorded for c.
func (h *Harness) Count(c core.Component, hook core.Hook) int {
	n := 0
	for _, got := range h.Hooks(c) {
		if got == hook {
			n++
		}
	}
	return n
}

// Find evaluates finder against the root container.
func (h *Harness) Find(finder Finder) FinderResult {
	return FinderResult{widgets: finder.Evaluate(h.root), finder: finder}
}
