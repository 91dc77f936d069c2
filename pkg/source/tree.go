package source

import (
	"strings"

	"github.com/matzehuels/chartkit/pkg/hierarchy"
)

// trie indexes hierarchy nodes by label so records sharing a prefix share
// ancestors. Children keep first-seen order through the node itself.
type trie struct {
	node     *hierarchy.Node
	children map[string]*trie
}

func newTrie(n *hierarchy.Node) *trie {
	return &trie{node: n, children: make(map[string]*trie)}
}

func (t *trie) child(key string, mk func() *hierarchy.Node) *trie {
	if c, ok := t.children[key]; ok {
		return c
	}
	c := newTrie(mk())
	t.children[key] = c
	t.node.Add(c.node)
	return c
}

func labelNode(depth int, role hierarchy.Role, label string, raw any, markers []string) *hierarchy.Node {
	return &hierarchy.Node{
		Depth:    depth,
		Values:   []hierarchy.Value{{Role: role, Label: label, Raw: raw}},
		Subtotal: isSubtotal(label, markers),
	}
}

// rowTree builds one path per record from the row dimension columns. The
// deepest node is split by group so each series gets its own leaf.
func (t *Table) rowTree(l layout, markers []string) *hierarchy.Node {
	root := newTrie(hierarchy.Root())
	var (
		prevCells  []any
		prevLabels []string
	)

	for r := range t.Rows {
		cells := make([]any, len(l.dims))
		labels := make([]string, len(l.dims))
		for i, c := range l.dims {
			cells[i], labels[i] = t.Cell(r, c), t.Label(r, c)
		}
		last := lastFilled(labels)
		if last < 0 {
			continue
		}
		for i := 0; i < last; i++ {
			if labels[i] == "" && i < len(prevLabels) {
				cells[i], labels[i] = prevCells[i], prevLabels[i]
			}
		}
		prevCells, prevLabels = cells, labels

		var (
			group      any
			groupLabel string
		)
		if l.group >= 0 {
			group, groupLabel = t.Cell(r, l.group), t.Label(r, l.group)
		}

		node := root
		for depth := 0; depth <= last; depth++ {
			raw, label := cells[depth], labels[depth]
			key := label
			if depth == last {
				key += "\x00" + groupLabel
			}
			node = node.child(key, func() *hierarchy.Node {
				n := labelNode(depth, hierarchy.RoleRow, label, raw, markers)
				if depth == last && groupLabel != "" {
					n.Values = append(n.Values, hierarchy.Value{
						Role:  hierarchy.RoleGroup,
						Label: groupLabel,
						Raw:   group,
					})
				}
				return n
			})
		}
	}
	return root.node
}

func lastFilled(labels []string) int {
	for i := len(labels) - 1; i >= 0; i-- {
		if labels[i] != "" {
			return i
		}
	}
	return -1
}

// columnTree splits every measure header on ColumnSeparator.
func (t *Table) columnTree(l layout, markers []string) *hierarchy.Node {
	root := newTrie(hierarchy.Root())
	for _, c := range l.measures {
		parts := strings.Split(t.Header[c], ColumnSeparator)
		node := root
		for depth, part := range parts {
			label := strings.TrimSpace(part)
			node = node.child(label, func() *hierarchy.Node {
				return labelNode(depth, hierarchy.RoleColumn, label, parseValue(label), markers)
			})
		}
	}
	return root.node
}
