package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "progressive").
	Namespace string
	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string
	// Registry is the Prometheus registerer (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
	// Buckets are the histogram buckets for reconcile duration.
	Buckets []float64
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithMetricsSubsystem sets the metrics subsystem.
func WithMetricsSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithMetricsRegistry sets the registerer the collectors are added to.
func WithMetricsRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = reg }
}

// Metrics holds the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	renders           *prometheus.CounterVec
	children          *prometheus.CounterVec
	reconciles        prometheus.Counter
	reconcileDuration prometheus.Histogram
	eventsPosted      *prometheus.CounterVec
	eventsDropped     *prometheus.CounterVec
	violations        *prometheus.CounterVec
}

// NewMetrics registers the engine collectors.
//
// Metrics collected:
//   - progressive_engine_renders_total{component,path}: self renders and children plans
//   - progressive_engine_children_total{action}: reused, removed and added children
//   - progressive_engine_reconciles_total
//   - progressive_engine_reconcile_duration_seconds
//   - progressive_engine_events_posted_total{kind}
//   - progressive_engine_events_dropped_total{kind,reason}
//   - progressive_engine_violations_total{kind}: thread, undeclared_event, props
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Namespace: "progressive",
		Subsystem: "engine",
		Registry:  prometheus.DefaultRegisterer,
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "renders_total",
			Help:      "Self renders and children plan computations by component type",
		}, []string{"component", "path"}),
		children: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "children_total",
			Help:      "Child components reused, removed or added by reconciliation",
		}, []string{"action"}),
		reconciles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "reconciles_total",
			Help:      "Diff-and-reconcile passes",
		}),
		reconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of a reconcile pass including the child cascade",
			Buckets:   cfg.Buckets,
		}),
		eventsPosted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "events_posted_total",
			Help:      "Events posted on component buses",
		}, []string{"kind"}),
		eventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "events_dropped_total",
			Help:      "Posted events with no listener or no handler for their kind",
		}, []string{"kind", "reason"}),
		violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "violations_total",
			Help:      "Fatal programming errors raised by the engine",
		}, []string{"kind"}),
	}
}

func (m *Metrics) render(component, path string) {
	if m != nil {
		m.renders.WithLabelValues(component, path).Inc()
	}
}

func (m *Metrics) reconciled(stats ReconcileStats, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.reconciles.Inc()
	m.reconcileDuration.Observe(elapsed.Seconds())
	m.children.WithLabelValues("reused").Add(float64(stats.Matched))
	m.children.WithLabelValues("removed").Add(float64(stats.Removed))
	m.children.WithLabelValues("added").Add(float64(stats.Added))
}

func (m *Metrics) posted(kind EventKind, d Delivery) {
	if m == nil {
		return
	}
	m.eventsPosted.WithLabelValues(string(kind)).Inc()
	if d != Delivered {
		m.eventsDropped.WithLabelValues(string(kind), d.String()).Inc()
	}
}

func (m *Metrics) violation(kind string) {
	if m != nil {
		m.violations.WithLabelValues(kind).Inc()
	}
}
