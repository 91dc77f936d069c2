package hierarchy

import "fmt"

// NoDepth marks a node without a defined depth (typically the synthetic
// root). Such nodes contribute no path element and never emit a leaf, but
// their children are still visited.
const NoDepth = -1

// Role identifies what a node value contributes to.
type Role uint8

const (
	// RoleRow values label row-axis levels.
	RoleRow Role = iota
	// RoleColumn values label column-axis levels.
	RoleColumn
	// RoleGroup values split leaves into panels or legend series. They are
	// diverted into the leaf's group key instead of its label path.
	RoleGroup
)

func (r Role) String() string {
	switch r {
	case RoleRow:
		return "row"
	case RoleColumn:
		return "column"
	case RoleGroup:
		return "group"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Value is one role-tagged label carried by a node.
type Value struct {
	Role  Role
	Label string
	// Raw is the underlying cell value used for sorting (a number, a
	// time.Time, a string, or nil).
	Raw any
}

// Text returns the display label, formatting Raw when Label is empty.
func (v Value) Text() string {
	if v.Label != "" || v.Raw == nil {
		return v.Label
	}
	return fmt.Sprint(v.Raw)
}

// Node is one row or column node of a pivot hierarchy. A node with no
// children is a leaf.
type Node struct {
	Depth    int
	Values   []Value
	Children []*Node
	// Subtotal marks a synthetic aggregate node. It and its subtree are
	// excluded from leaf enumeration.
	Subtotal bool
}

// Root creates a node without depth holding children.
func Root(children ...*Node) *Node {
	return &Node{Depth: NoDepth, Children: children}
}

// Labeled creates a node at depth with a single value.
func Labeled(depth int, role Role, label string, children ...*Node) *Node {
	return &Node{
		Depth:    depth,
		Values:   []Value{{Role: role, Label: label}},
		Children: children,
	}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Visitor is called once per visited node. ancestors lists the visited
// nodes from the root down to n's parent; it is only valid for the duration
// of the call.
type Visitor func(n *Node, ancestors []*Node)

// Traverse walks the tree rooted at root depth-first in document order,
// skipping subtotal nodes and their descendants.
func Traverse(root *Node, visit Visitor) {
	var walk func(n *Node, ancestors []*Node)
	walk = func(n *Node, ancestors []*Node) {
		if n == nil || n.Subtotal {
			return
		}
		visit(n, ancestors)
		ancestors = append(ancestors, n)
		for _, c := range n.Children {
			walk(c, ancestors)
		}
	}
	walk(root, nil)
}
