package hierarchy_test

import (
	"fmt"

	"github.com/matzehuels/chartkit/pkg/hierarchy"
)

func ExampleColumns() {
	cols := hierarchy.Root(
		hierarchy.Labeled(0, hierarchy.RoleColumn, "2024",
			hierarchy.Labeled(1, hierarchy.RoleColumn, "Q1"),
			hierarchy.Labeled(1, hierarchy.RoleColumn, "Q2"),
		),
		hierarchy.Labeled(0, hierarchy.RoleColumn, "2025",
			hierarchy.Labeled(1, hierarchy.RoleColumn, "Q1"),
		),
	)

	h := hierarchy.Columns(cols, nil)
	for level, spans := range h.SpansByLevel {
		for _, s := range spans {
			fmt.Printf("level %d: %s [%d-%d]\n", level, s.Label, s.Start, s.End)
		}
	}
	// Output:
	// level 0: 2024 [0-1]
	// level 0: 2025 [2-2]
	// level 1: Q1 [0-0]
	// level 1: Q2 [1-1]
	// level 1: Q1 [2-2]
}

func ExampleRows() {
	sale := func(city, channel string) *hierarchy.Node {
		return &hierarchy.Node{Depth: 1, Values: []hierarchy.Value{
			{Role: hierarchy.RoleRow, Label: city},
			{Role: hierarchy.RoleGroup, Label: channel},
		}}
	}
	rows := hierarchy.Root(
		hierarchy.Labeled(0, hierarchy.RoleRow, "East", sale("Boston", "Online"), sale("NYC", "Retail")),
		hierarchy.Labeled(0, hierarchy.RoleRow, "West", sale("Denver", "Online")),
	)

	for _, p := range hierarchy.Rows(rows) {
		fmt.Println(p.Group, p.Hierarchy.Labels())
	}
	// Output:
	// Online [Boston Denver]
	// Retail [NYC]
}
