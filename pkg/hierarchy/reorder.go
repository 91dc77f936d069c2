package hierarchy

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/chartkit/pkg/sortkey"
)

// Direction is the sort order of one hierarchy level.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending"
// (case-insensitive). Anything else is Ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// Reorder returns leaves sorted by their normalized sort values when the
// deepest value of every leaf is numeric; otherwise it returns them in the
// original order, which upstream data sources already present as intended.
//
// Leaves compare level by level from the outermost, each level honoring
// dirs[level] (missing entries are Ascending). Values of different kinds
// are incomparable and fall back to original position, and equal leaves
// keep their relative order. The input slice is not modified.
func Reorder(leaves []Leaf, dirs []Direction) []Leaf {
	out := slices.Clone(leaves)
	if len(out) < 2 {
		return out
	}

	depth := 0
	for _, l := range out {
		depth = max(depth, len(l.Path))
	}

	keys := make([][]sortkey.Key, len(out))
	for i, l := range out {
		if len(l.Path) == 0 {
			return out
		}
		keys[i] = make([]sortkey.Key, depth)
		for level := range depth {
			keys[i][level] = keyAt(l, level)
		}
		if !keys[i][len(l.Path)-1].IsNumeric() {
			return out
		}
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		for level := range depth {
			c, ok := sortkey.Compare(keys[a][level], keys[b][level])
			if !ok {
				return cmp.Compare(a, b)
			}
			if c != 0 {
				if level < len(dirs) && dirs[level] == Descending {
					return -c
				}
				return c
			}
		}
		return cmp.Compare(a, b)
	})

	sorted := make([]Leaf, len(out))
	for i, idx := range order {
		sorted[i] = out[idx]
	}
	return sorted
}

func keyAt(l Leaf, level int) sortkey.Key {
	if level >= len(l.Path) {
		return sortkey.Text("")
	}
	var raw any
	if level < len(l.Raw) {
		raw = l.Raw[level]
	}
	return sortkey.Normalize(raw, l.Path[level])
}
