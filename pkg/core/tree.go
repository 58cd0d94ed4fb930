package core

// NodeInfo is a snapshot of a component subtree, used by diagnostics.
type NodeInfo struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	HasData  bool       `json:"hasData"`
	Listener bool       `json:"listener"`
	Children []NodeInfo `json:"children,omitempty"`
}

// Describe snapshots the subtree rooted at c. It must run on the UI thread.
func Describe(c Component) NodeInfo {
	n := c.node()
	n.ensureThread("core.Describe")
	return describe(n)
}

func describe(n *node) NodeInfo {
	info := NodeInfo{
		ID:       n.id,
		Type:     n.typeName,
		HasData:  n.hasData,
		Listener: n.bus.Listener() != nil,
	}
	for _, child := range n.children {
		info.Children = append(info.Children, describe(child.node()))
	}
	return info
}

// Children returns c's current children in plan order.
func Children(c Component) []Component {
	n := c.node()
	n.ensureThread("core.Children")
	out := make([]Component, len(n.children))
	copy(out, n.children)
	return out
}

// ID returns c's unique id.
func ID(c Component) string {
	return c.node().id
}

// TypeName returns c's concrete type name, as used in logs and metrics.
func TypeName(c Component) string {
	return c.node().typeName
}
