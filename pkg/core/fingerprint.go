package core

import "reflect"

// Fingerprint is an opaque set of values projected out of component data.
// It is used only to detect whether a render path is affected by a change.
// Equality is set equality with reflect.DeepEqual on the elements.
type Fingerprint struct {
	items []any
}

// FingerprintOf builds a fingerprint from values. Duplicates collapse.
func FingerprintOf(values ...any) Fingerprint {
	var f Fingerprint
	for _, v := range values {
		if !f.contains(v) {
			f.items = append(f.items, v)
		}
	}
	return f
}

// AllData is the fingerprint of a path affected by every part of data.
func AllData(data any) Fingerprint {
	return FingerprintOf(data)
}

// NoData is the constant empty fingerprint of a path no data affects.
func NoData() Fingerprint {
	return Fingerprint{}
}

// Len returns the number of distinct values.
func (f Fingerprint) Len() int {
	return len(f.items)
}

// Equal reports set equality.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f.items) != len(other.items) {
		return false
	}
	for _, v := range f.items {
		if !other.contains(v) {
			return false
		}
	}
	return true
}

func (f Fingerprint) contains(v any) bool {
	for _, item := range f.items {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

// SelfPartitioned is the "all data affects self" partition: every data change
// re-renders the component's own widget, and the children plan is computed
// once and never again.
type SelfPartitioned[D any] struct{}

func (SelfPartitioned[D]) PartitionForSelf(data D) Fingerprint     { return AllData(data) }
func (SelfPartitioned[D]) PartitionForChildren(data D) Fingerprint { return NoData() }

// ChildrenPartitioned is the dual: every data change recomputes the children
// plan, and the own widget renders once.
type ChildrenPartitioned[D any] struct{}

func (ChildrenPartitioned[D]) PartitionForSelf(data D) Fingerprint     { return NoData() }
func (ChildrenPartitioned[D]) PartitionForChildren(data D) Fingerprint { return AllData(data) }
