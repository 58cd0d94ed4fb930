package toolkit

// Info is a serializable snapshot of a widget subtree.
type Info struct {
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text,omitempty"`
	Size     Size   `json:"size"`
	Children []Info `json:"children,omitempty"`
}

// Describe snapshots the subtree rooted at w.
func Describe(w Widget) Info {
	info := Info{Kind: w.Kind(), Size: w.PreferredSize()}
	if t, ok := w.(Texter); ok {
		info.Text = t.Text()
	}
	if c, ok := w.(*Container); ok {
		info.Name = c.name
		for _, child := range c.children {
			info.Children = append(info.Children, Describe(child))
		}
	}
	return info
}

// Walk calls fn for w and every descendant, depth first. Returning false
// from fn stops the walk.
func Walk(w Widget, fn func(Widget) bool) bool {
	if !fn(w) {
		return false
	}
	if c, ok := w.(*Container); ok {
		for _, child := range c.children {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}

// Find returns the first widget under root matching pred, or nil.
func Find(root Widget, pred func(Widget) bool) Widget {
	var found Widget
	Walk(root, func(w Widget) bool {
		if pred(w) {
			found = w
			return false
		}
		return true
	})
	return found
}

// FindAll returns every widget under root matching pred.
func FindAll(root Widget, pred func(Widget) bool) []Widget {
	var out []Widget
	Walk(root, func(w Widget) bool {
		if pred(w) {
			out = append(out, w)
		}
		return true
	})
	return out
}

// ByKind matches widgets of the given kind.
func ByKind(kind string) func(Widget) bool {
	return func(w Widget) bool { return w.Kind() == kind }
}

// ByText matches widgets displaying exactly text.
func ByText(text string) func(Widget) bool {
	return func(w Widget) bool {
		t, ok := w.(Texter)
		return ok && t.Text() == text
	}
}
