package flexbox

// Rect is a node's computed layout: offsets relative to the parent node's
// origin plus the node's outer width and height, all in solver units.
type Rect struct {
	Left, Top, Width, Height float64
}

// Node is one box in the solver tree. Nodes are compared by identity; a
// node belongs to at most one parent at a time.
type Node struct {
	Style Style

	parent   *Node
	children []*Node
	layout   Rect
}

// NewNode creates a detached node with default style.
func NewNode() *Node {
	return &Node{Style: DefaultStyle()}
}

// Layout returns the node's layout as computed by the last CalculateLayout.
func (n *Node) Layout() Rect {
	return n.layout
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// ChildCount returns the number of attached children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the child at the given index, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AppendChild attaches a child after all existing children. A child already
// attached elsewhere is detached first.
func (n *Node) AppendChild(child *Node) {
	n.InsertChild(child, len(n.children))
}

// InsertChild attaches a child at the given index, clamped to the valid
// range.
func (n *Node) InsertChild(child *Node, index int) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
}

// RemoveChild detaches a child. Unknown children are ignored.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return
		}
	}
}
