package hierarchy

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"
)

// leavesFromPaths builds leaves in the given order with text-only values.
func leavesFromPaths(paths ...[]string) []Leaf {
	leaves := make([]Leaf, len(paths))
	for i, p := range paths {
		leaves[i] = Leaf{Key: strings.Join(p, KeySeparator), Path: p, Raw: make([]any, len(p)), Index: i}
	}
	return leaves
}

// checkPartition verifies the span partition and prefix-equality invariants.
func checkPartition(t *testing.T, h Hierarchy) {
	t.Helper()
	if len(h.SpansByLevel) != h.Depth {
		t.Fatalf("len(SpansByLevel) = %d, want Depth %d", len(h.SpansByLevel), h.Depth)
	}
	if len(h.LeafKeys) != len(h.LeafPaths) {
		t.Fatalf("len(LeafKeys) = %d, len(LeafPaths) = %d", len(h.LeafKeys), len(h.LeafPaths))
	}
	n := h.LeafCount()
	for level, spans := range h.SpansByLevel {
		next := 0
		for _, s := range spans {
			if s.Start != next || s.End < s.Start {
				t.Fatalf("level %d: span %+v breaks contiguity at %d", level, s, next)
			}
			for i := s.Start + 1; i <= s.End; i++ {
				if !samePrefix(h.LeafPaths[i-1], h.LeafPaths[i], level) {
					t.Errorf("level %d: leaves %d and %d merged with different prefixes", level, i-1, i)
				}
			}
			next = s.End + 1
		}
		if next != n {
			t.Fatalf("level %d: spans cover [0,%d), want [0,%d)", level, next, n)
		}
		for i := 1; i < len(spans); i++ {
			a, b := spans[i-1], spans[i]
			if samePrefix(h.LeafPaths[a.End], h.LeafPaths[b.Start], level) {
				t.Errorf("level %d: spans %d and %d share a prefix but were split", level, i-1, i)
			}
		}
	}
}

func TestBuildQuarterExample(t *testing.T) {
	h := Build(leavesFromPaths(
		[]string{"2024", "Q1"},
		[]string{"2024", "Q2"},
		[]string{"2025", "Q1"},
	))
	checkPartition(t, h)

	if h.Depth != 2 {
		t.Fatalf("Depth = %d, want 2", h.Depth)
	}

	level0 := []Span{
		{Level: 0, Start: 0, End: 1, Label: "2024", Key: "2024"},
		{Level: 0, Start: 2, End: 2, Label: "2025", Key: "2025"},
	}
	if !reflect.DeepEqual(h.SpansByLevel[0], level0) {
		t.Errorf("level 0 spans = %+v, want %+v", h.SpansByLevel[0], level0)
	}

	level1 := []Span{
		{Level: 1, Start: 0, End: 0, Label: "Q1", Key: "2024" + KeySeparator + "Q1"},
		{Level: 1, Start: 1, End: 1, Label: "Q2", Key: "2024" + KeySeparator + "Q2"},
		{Level: 1, Start: 2, End: 2, Label: "Q1", Key: "2025" + KeySeparator + "Q1"},
	}
	if !reflect.DeepEqual(h.SpansByLevel[1], level1) {
		t.Errorf("level 1 spans = %+v, want %+v", h.SpansByLevel[1], level1)
	}
}

func TestBuildSameLabelDifferentAncestors(t *testing.T) {
	// "Q1" at level 1 under 2024 and 2025 must not merge even when adjacent.
	h := Build(leavesFromPaths(
		[]string{"2024", "Q1"},
		[]string{"2025", "Q1"},
	))
	checkPartition(t, h)

	if got := len(h.SpansAt(1)); got != 2 {
		t.Errorf("level 1 span count = %d, want 2", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	h := Build(nil)
	if h.Depth != 0 || len(h.LeafKeys) != 0 || len(h.SpansByLevel) != 0 {
		t.Errorf("Build(nil) = %+v, want empty hierarchy", h)
	}
	if h.LeafKeys == nil || h.SpansByLevel == nil {
		t.Error("Build(nil) should return empty, non-nil slices")
	}
}

func TestBuildRaggedPaths(t *testing.T) {
	h := Build(leavesFromPaths(
		[]string{"Europe", "France", "Paris"},
		[]string{"Europe", "France"},
		[]string{"Asia"},
	))
	checkPartition(t, h)

	if h.Depth != 3 {
		t.Fatalf("Depth = %d, want 3", h.Depth)
	}
	// Missing levels read as "", so the ragged leaves split at level 2.
	level2 := h.SpansAt(2)
	if len(level2) != 3 || level2[1].Label != "" || level2[2].Label != "" {
		t.Errorf("level 2 spans = %+v, want three spans with empty labels for short paths", level2)
	}
	if got := h.SpansAt(5); got != nil {
		t.Errorf("SpansAt(5) = %v, want nil", got)
	}
}

func TestBuildPropertyRandomTrees(t *testing.T) {
	labels := []string{"A", "B", "C"}
	for seed := 0; seed < 50; seed++ {
		var paths [][]string
		for i := 0; i < 12; i++ {
			depth := 1 + (seed+i)%3
			p := make([]string, depth)
			for d := range p {
				p[d] = labels[(seed*7+i*3+d*5+i/2)%len(labels)]
			}
			paths = append(paths, p)
		}
		h := Build(leavesFromPaths(paths...))
		checkPartition(t, h)
	}
}

func TestBuildKeyLookups(t *testing.T) {
	h := Build(leavesFromPaths([]string{"East", "Boston"}, []string{"West", "Denver"}))

	key := "West" + KeySeparator + "Denver"
	if got := h.KeyToPath[key]; !slices.Equal(got, []string{"West", "Denver"}) {
		t.Errorf("KeyToPath[%q] = %v", key, got)
	}
	if i, ok := h.LeafIndex(key); !ok || i != 1 {
		t.Errorf("LeafIndex(%q) = %d, %v, want 1, true", key, i, ok)
	}
	if _, ok := h.LeafIndex("missing"); ok {
		t.Error("LeafIndex(missing) should report false")
	}
	if got := h.Labels(); !slices.Equal(got, []string{"Boston", "Denver"}) {
		t.Errorf("Labels() = %v", got)
	}
}

func TestCollectSkipsSubtotals(t *testing.T) {
	total := Labeled(1, RoleRow, "Total", Labeled(2, RoleRow, "hidden"))
	total.Subtotal = true

	root := Root(
		Labeled(0, RoleRow, "East",
			Labeled(1, RoleRow, "Boston"),
			total,
			Labeled(1, RoleRow, "NYC"),
		),
		&Node{Depth: 0, Subtotal: true, Values: []Value{{Role: RoleRow, Label: "Grand Total"}}},
	)

	leaves := Collect(root)
	var got [][]string
	for _, l := range leaves {
		got = append(got, l.Path)
	}
	want := [][]string{{"East", "Boston"}, {"East", "NYC"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect paths = %v, want %v", got, want)
	}
}

func TestCollectRolesAndKeys(t *testing.T) {
	leaf := &Node{
		Depth: 1,
		Values: []Value{
			{Role: RoleRow, Label: "Laptops"},
			{Role: RoleGroup, Label: "Online"},
			{Role: RoleRow, Label: "Premium"},
		},
	}
	root := Root(Labeled(0, RoleRow, "Hardware", leaf))

	leaves := Collect(root)
	if len(leaves) != 1 {
		t.Fatalf("Collect() returned %d leaves, want 1", len(leaves))
	}
	l := leaves[0]
	wantPath := []string{"Hardware", "Laptops" + LabelSeparator + "Premium"}
	if !slices.Equal(l.Path, wantPath) {
		t.Errorf("Path = %q, want %q", l.Path, wantPath)
	}
	if l.GroupKey != "Online" {
		t.Errorf("GroupKey = %q, want Online", l.GroupKey)
	}
	if l.Key != strings.Join(wantPath, KeySeparator) {
		t.Errorf("Key = %q", l.Key)
	}
	if l.Label() != wantPath[1] {
		t.Errorf("Label() = %q", l.Label())
	}
}

func TestCollectFallbackKeys(t *testing.T) {
	// Leaves with only group values have empty paths.
	root := Root(
		&Node{Depth: 0, Values: []Value{{Role: RoleGroup, Label: "A"}}},
		&Node{Depth: 0, Values: []Value{{Role: RoleGroup, Label: "B"}}},
	)
	leaves := Collect(root)
	if len(leaves) != 2 || leaves[0].Key != "fallback0" || leaves[1].Key != "fallback1" {
		t.Errorf("Collect() = %+v, want fallback0 and fallback1 keys", leaves)
	}
}

func TestCollectUndefinedDepth(t *testing.T) {
	// A childless node without depth is not a leaf.
	root := Root(Root(), Labeled(0, RoleColumn, "Only"))
	leaves := Collect(root)
	if len(leaves) != 1 || leaves[0].Label() != "Only" {
		t.Errorf("Collect() = %+v, want single leaf Only", leaves)
	}
	if got := Collect(nil); len(got) != 0 {
		t.Errorf("Collect(nil) = %v, want none", got)
	}
}

func TestValueText(t *testing.T) {
	if got := (Value{Raw: 2024}).Text(); got != "2024" {
		t.Errorf("Text() = %q, want 2024", got)
	}
	if got := (Value{Label: "FY24", Raw: 2024}).Text(); got != "FY24" {
		t.Errorf("Text() = %q, want FY24", got)
	}
}

func TestTraverseOrderAndAncestors(t *testing.T) {
	root := Root(
		Labeled(0, RoleRow, "a", Labeled(1, RoleRow, "a1")),
		Labeled(0, RoleRow, "b"),
	)
	var visits []string
	Traverse(root, func(n *Node, ancestors []*Node) {
		label := "root"
		if len(n.Values) > 0 {
			label = n.Values[0].Label
		}
		visits = append(visits, fmt.Sprintf("%s@%d", label, len(ancestors)))
	})
	want := []string{"root@0", "a@1", "a1@2", "b@1"}
	if !slices.Equal(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
}

func TestGroupBy(t *testing.T) {
	leaves := []Leaf{
		{Key: "1", GroupKey: "North"},
		{Key: "2", GroupKey: "South"},
		{Key: "3", GroupKey: "North"},
	}
	groups := GroupBy(leaves)
	if len(groups) != 2 || groups[0].Key != "North" || groups[1].Key != "South" {
		t.Fatalf("GroupBy() = %+v", groups)
	}
	if groups[0].Leaves[0].Key != "1" || groups[0].Leaves[1].Key != "3" {
		t.Errorf("North leaves = %+v, want input order", groups[0].Leaves)
	}
}

func TestRowsBuildsPanelPerGroup(t *testing.T) {
	row := func(region, city, channel string) *Node {
		return &Node{Depth: 1, Values: []Value{{Role: RoleRow, Label: city}, {Role: RoleGroup, Label: channel}}}
	}
	root := Root(
		Labeled(0, RoleRow, "East", row("East", "Boston", "Online"), row("East", "NYC", "Retail")),
		Labeled(0, RoleRow, "West", row("West", "Denver", "Online")),
	)

	panels := Rows(root)
	if len(panels) != 2 {
		t.Fatalf("Rows() returned %d panels, want 2", len(panels))
	}
	online := panels[0]
	if online.Group != "Online" || online.Hierarchy.GroupKey != "Online" {
		t.Errorf("panel 0 group = %q", online.Group)
	}
	if got := online.Hierarchy.Labels(); !slices.Equal(got, []string{"Boston", "Denver"}) {
		t.Errorf("Online labels = %v", got)
	}
	// Group values never leak into the label path.
	for _, p := range online.Hierarchy.LeafPaths {
		if slices.Contains(p, "Online") {
			t.Errorf("path %v contains group value", p)
		}
	}
	checkPartition(t, online.Hierarchy)
}

func TestColumnsReordersMonths(t *testing.T) {
	month := func(label string) *Node { return Labeled(0, RoleColumn, label) }
	root := Root(month("Mar 2023"), month("2023-01"), month("Feb 2023"))

	h := Columns(root, nil)
	if got := h.Labels(); !slices.Equal(got, []string{"2023-01", "Feb 2023", "Mar 2023"}) {
		t.Errorf("Labels() = %v, want chronological order", got)
	}

	desc := Columns(root, []Direction{Descending})
	if got := desc.Labels(); !slices.Equal(got, []string{"Mar 2023", "Feb 2023", "2023-01"}) {
		t.Errorf("descending Labels() = %v", got)
	}
}

func TestColumnsDates(t *testing.T) {
	day := func(d int) *Node {
		ts := time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
		return &Node{Depth: 0, Values: []Value{{Role: RoleColumn, Label: ts.Format("Jan 2"), Raw: ts}}}
	}
	h := Columns(Root(day(15), day(3), day(9)), nil)
	if got := h.Labels(); !slices.Equal(got, []string{"Jan 3", "Jan 9", "Jan 15"}) {
		t.Errorf("Labels() = %v", got)
	}
}

func TestDirectionParsing(t *testing.T) {
	tests := map[string]Direction{
		"asc": Ascending, "": Ascending, "DESC": Descending, " descending ": Descending, "bogus": Ascending,
	}
	for in, want := range tests {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %v, want %v", in, got, want)
		}
	}
}
