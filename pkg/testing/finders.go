package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/progressit/progressive/pkg/toolkit"
)

// Finder locates widgets under a root.
type Finder interface {
	// Evaluate returns all matching widgets under root (depth-first pre-order).
	Evaluate(root toolkit.Widget) []toolkit.Widget
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	widgets []toolkit.Widget
	finder  Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() toolkit.Widget {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.description()))
	}
	return r.widgets[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() toolkit.Widget {
	if len(r.widgets) == 0 {
		return nil
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) toolkit.Widget {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.description()))
	}
	return r.widgets[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []toolkit.Widget { return r.widgets }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.widgets) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.widgets) > 0 }

// Text returns the text of the first match. Panics if it shows no text.
func (r FinderResult) Text() string {
	w := r.First()
	t, ok := w.(toolkit.Texter)
	if !ok {
		panic(fmt.Sprintf("%s matched a %s, which has no text", r.description(), w.Kind()))
	}
	return t.Text()
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// predicateFinder matches widgets satisfying a predicate.
type predicateFinder struct {
	fn   func(toolkit.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(root toolkit.Widget) []toolkit.Widget {
	return toolkit.FindAll(root, f.fn)
}

func (f *predicateFinder) Description() string { return f.desc }

// ByType returns a finder that matches widgets of type T.
func ByType[T toolkit.Widget]() Finder {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return &predicateFinder{
		fn:   func(w toolkit.Widget) bool { return reflect.TypeOf(w) == t },
		desc: fmt.Sprintf("ByType(%s)", t),
	}
}

// ByKind returns a finder that matches widgets of the given kind.
func ByKind(kind string) Finder {
	return &predicateFinder{fn: toolkit.ByKind(kind), desc: fmt.Sprintf("ByKind(%q)", kind)}
}

// ByText returns a finder that matches widgets showing exactly text.
func ByText(text string) Finder {
	return &predicateFinder{fn: toolkit.ByText(text), desc: fmt.Sprintf("ByText(%q)", text)}
}

// ByTextContaining returns a finder that matches widgets whose text contains
// substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(w toolkit.Widget) bool {
			t, ok := w.(toolkit.Texter)
			return ok && strings.Contains(t.Text(), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(toolkit.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds widgets matching 'matching' inside containers
// matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root toolkit.Widget) []toolkit.Widget {
	var results []toolkit.Widget
	seen := make(map[toolkit.Widget]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		c, ok := ancestor.(*toolkit.Container)
		if !ok {
			continue
		}
		for _, child := range c.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying 'matching'
// that are descendants of containers matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
