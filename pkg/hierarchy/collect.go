package hierarchy

import (
	"strconv"
	"strings"
)

const (
	// LabelSeparator joins several values of one node into one label.
	LabelSeparator = " • "

	// KeySeparator joins path labels into structural keys. The unit
	// separator never appears in display text.
	KeySeparator = "\x1f"
)

// Leaf is one terminal position on an axis.
type Leaf struct {
	// Key is the joined label path, or "fallback{n}" for an empty path.
	Key  string
	Path []string
	// Raw holds the sort value of each path element (nil when unknown).
	Raw      []any
	GroupKey string
	// Index is the leaf's position in document order.
	Index int
}

// Label returns the deepest path label, or "" for an empty path.
func (l Leaf) Label() string {
	if len(l.Path) == 0 {
		return ""
	}
	return l.Path[len(l.Path)-1]
}

// frame is the accumulated contribution of one visited node.
type frame struct {
	label  string
	raw    any
	ok     bool // node contributed a path element
	groups []string
}

// Collect enumerates the leaves under root in document order.
//
// Every visited node with a defined depth appends one path element built
// from its non-group values joined with LabelSeparator. Group values are
// accumulated into the leaf's GroupKey instead, so a series value is never
// duplicated into axis labels.
func Collect(root *Node) []Leaf {
	var (
		leaves []Leaf
		stack  []frame
	)
	Traverse(root, func(n *Node, ancestors []*Node) {
		stack = append(stack[:len(ancestors)], nodeFrame(n))
		if !n.IsLeaf() || n.Depth == NoDepth {
			return
		}
		leaves = append(leaves, leafFrom(stack, len(leaves)))
	})
	return leaves
}

func nodeFrame(n *Node) frame {
	if n.Depth == NoDepth {
		return frame{}
	}
	var (
		f      frame
		labels []string
	)
	for _, v := range n.Values {
		if v.Role == RoleGroup {
			f.groups = append(f.groups, v.Text())
			continue
		}
		if len(labels) == 0 {
			f.raw = v.Raw
		}
		labels = append(labels, v.Text())
	}
	if len(labels) > 0 {
		f.label = strings.Join(labels, LabelSeparator)
		f.ok = true
		if len(labels) > 1 {
			// A joined label has no single underlying value.
			f.raw = nil
		}
	}
	return f
}

func leafFrom(stack []frame, index int) Leaf {
	var (
		path   []string
		raw    []any
		groups []string
	)
	for _, f := range stack {
		if f.ok {
			path = append(path, f.label)
			raw = append(raw, f.raw)
		}
		groups = append(groups, f.groups...)
	}
	key := strings.Join(path, KeySeparator)
	if len(path) == 0 {
		key = "fallback" + strconv.Itoa(index)
	}
	return Leaf{
		Key:      key,
		Path:     path,
		Raw:      raw,
		GroupKey: strings.Join(groups, LabelSeparator),
		Index:    index,
	}
}

// Group is a bucket of leaves sharing a group key.
type Group struct {
	Key    string
	Leaves []Leaf
}

// GroupBy buckets leaves by GroupKey. Buckets appear in order of first
// occurrence and keep their leaves in input order.
func GroupBy(leaves []Leaf) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, l := range leaves {
		i, ok := index[l.GroupKey]
		if !ok {
			i = len(groups)
			index[l.GroupKey] = i
			groups = append(groups, Group{Key: l.GroupKey})
		}
		groups[i].Leaves = append(groups[i].Leaves, l)
	}
	return groups
}
