package core

import (
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/progressit/progressive/pkg/errors"
)

// reconcile realizes next against the current children with a positional,
// type-gated prefix diff:
//
//   - the longest prefix whose concrete types match position by position is
//     reused: listener rebound and props delivered, no placement hooks;
//   - every old child past the prefix is removed, last first;
//   - every new entry past the prefix is placed in order.
//
// Removal always happens before addition. Moved children are not recognized:
// a type change at index i replaces everything from i on.
func (n *node) reconcile(next ChildrenPlan) ReconcileStats {
	const op = "core.reconcile"
	for i, cp := range next {
		if cp.Component == nil {
			panic(errors.New(op, errors.KindConfig, n.typeName,
				fmt.Errorf("%w: children plan entry %d has no component", errors.ErrMissingCollaborator, i)))
		}
		if cp.Component.node().rt == nil {
			panic(errors.New(op, errors.KindConfig, n.typeName,
				fmt.Errorf("%w: children plan entry %d is not initialized", errors.ErrMissingCollaborator, i)))
		}
	}

	start := time.Now()
	span, end := n.rt.startSpan("progressive.reconcile", trace.WithAttributes(
		attribute.String("progressive.component", n.typeName),
		attribute.String("progressive.id", n.id),
	))
	defer end()
	defer recordPanic(span)

	old := n.plan
	stats := ReconcileStats{OldSize: len(old), NewSize: len(next)}
	common := min(len(old), len(next))
	for stats.Matched < common && sameType(old[stats.Matched].Component, next[stats.Matched].Component) {
		stats.Matched++
	}
	n.logger.Debug("reconciling children",
		"old", stats.OldSize, "new", stats.NewSize, "matched", stats.Matched)

	for i := 0; i < stats.Matched; i++ {
		c := n.children[i]
		c.ClearListener()
		c.SetListener(next[i].Listener)
		c.SetProps(next[i].Props)
	}

	for len(n.children) > stats.Matched {
		last := len(n.children) - 1
		c := n.children[last]
		n.children[last] = nil
		n.children = n.children[:last]
		unmount(c)
		stats.Removed++
	}

	for _, cp := range next[stats.Matched:] {
		n.children = append(n.children, cp.Component)
		mount(cp.Component, cp.Listener, cp.Props)
		stats.Added++
	}

	// Reused positions keep their existing instances.
	realized := make(ChildrenPlan, len(next))
	for i, cp := range next {
		realized[i] = ChildPlan{Component: n.children[i], Props: cp.Props, Listener: cp.Listener}
	}
	n.plan = realized

	span.SetAttributes(
		attribute.Int("progressive.reconcile.old", stats.OldSize),
		attribute.Int("progressive.reconcile.new", stats.NewSize),
		attribute.Int("progressive.reconcile.matched", stats.Matched),
		attribute.Int("progressive.reconcile.removed", stats.Removed),
		attribute.Int("progressive.reconcile.added", stats.Added),
	)
	n.rt.metrics.reconciled(stats, time.Since(start))
	n.rt.observe(n, HookReconcile, &stats)
	return stats
}

// sameType reports whether a and b have the same concrete type.
func sameType(a, b Component) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
