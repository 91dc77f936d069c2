package hierarchy

import "strings"

// Span is one merged header cell: a contiguous run of leaves sharing the
// same label prefix up to and including Level.
type Span struct {
	Level int    `json:"level"`
	Start int    `json:"start"` // first leaf index, inclusive
	End   int    `json:"end"`   // last leaf index, inclusive
	Label string `json:"label"`
	Key   string `json:"key"` // joined labels of path[0..Level]
}

// Len returns the number of leaves covered.
func (s Span) Len() int { return s.End - s.Start + 1 }

// Hierarchy is the flattened form of one axis.
type Hierarchy struct {
	Depth        int                 `json:"depth"`
	LeafKeys     []string            `json:"leaf_keys"`
	LeafPaths    [][]string          `json:"leaf_paths"`
	SpansByLevel [][]Span            `json:"spans_by_level"`
	KeyToPath    map[string][]string `json:"key_to_path"`
	// GroupKey is the group shared by every leaf (row panels only).
	GroupKey string `json:"group_key,omitempty"`
}

// LeafCount returns the number of leaves.
func (h Hierarchy) LeafCount() int { return len(h.LeafKeys) }

// SpansAt returns the spans of level, or nil when out of range.
func (h Hierarchy) SpansAt(level int) []Span {
	if level < 0 || level >= len(h.SpansByLevel) {
		return nil
	}
	return h.SpansByLevel[level]
}

// LeafIndex returns the first leaf index with key.
func (h Hierarchy) LeafIndex(key string) (int, bool) {
	for i, k := range h.LeafKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// Labels returns the deepest label of every leaf, in display order.
func (h Hierarchy) Labels() []string {
	labels := make([]string, len(h.LeafPaths))
	for i, p := range h.LeafPaths {
		if len(p) > 0 {
			labels[i] = p[len(p)-1]
		}
	}
	return labels
}

// Build flattens leaves, in the given order, into a Hierarchy.
//
// For every level L a single left-to-right scan starts a new span whenever
// the label prefix path[0..L] differs from the previous leaf's, so two
// leaves with the same level-L label under different ancestors never merge.
// Leaves with shorter paths read missing levels as "". The cost is
// O(len(leaves) × depth).
func Build(leaves []Leaf) Hierarchy {
	h := Hierarchy{
		LeafKeys:     make([]string, 0, len(leaves)),
		LeafPaths:    make([][]string, 0, len(leaves)),
		SpansByLevel: [][]Span{},
		KeyToPath:    make(map[string][]string, len(leaves)),
	}
	for _, l := range leaves {
		h.Depth = max(h.Depth, len(l.Path))
		h.LeafKeys = append(h.LeafKeys, l.Key)
		h.LeafPaths = append(h.LeafPaths, l.Path)
		if _, ok := h.KeyToPath[l.Key]; !ok {
			h.KeyToPath[l.Key] = l.Path
		}
	}

	for level := 0; level < h.Depth; level++ {
		h.SpansByLevel = append(h.SpansByLevel, spansAt(h.LeafPaths, level))
	}
	return h
}

func spansAt(paths [][]string, level int) []Span {
	var spans []Span
	start := 0
	for i := 1; i <= len(paths); i++ {
		if i < len(paths) && samePrefix(paths[i-1], paths[i], level) {
			continue
		}
		spans = append(spans, Span{
			Level: level,
			Start: start,
			End:   i - 1,
			Label: labelAt(paths[start], level),
			Key:   prefixKey(paths[start], level),
		})
		start = i
	}
	return spans
}

func samePrefix(a, b []string, level int) bool {
	for k := 0; k <= level; k++ {
		if labelAt(a, k) != labelAt(b, k) {
			return false
		}
	}
	return true
}

func labelAt(path []string, level int) string {
	if level < len(path) {
		return path[level]
	}
	return ""
}

func prefixKey(path []string, level int) string {
	parts := make([]string, level+1)
	for k := range parts {
		parts[k] = labelAt(path, k)
	}
	return strings.Join(parts, KeySeparator)
}

// Panel is the row hierarchy of one group bucket.
type Panel struct {
	Group     string    `json:"group"`
	Hierarchy Hierarchy `json:"hierarchy"`
}

// Columns builds the column axis: leaves are collected, reordered by their
// sort values when every deepest value is numeric, then flattened.
func Columns(root *Node, dirs []Direction) Hierarchy {
	return Build(Reorder(Collect(root), dirs))
}

// Rows builds one row hierarchy per group bucket, keeping document order.
func Rows(root *Node) []Panel {
	groups := GroupBy(Collect(root))
	panels := make([]Panel, 0, len(groups))
	for _, g := range groups {
		h := Build(g.Leaves)
		h.GroupKey = g.Key
		panels = append(panels, Panel{Group: g.Key, Hierarchy: h})
	}
	return panels
}
