// Package hierarchy flattens pivot-matrix row and column trees into leaf
// orders and merged header spans.
//
// # Overview
//
// A pivot axis arrives as a tree of [Node] values. Each node carries
// role-tagged [Value] labels for its depth and may be flagged as a subtotal.
// Rendering needs the tree in a flat form: one ordered list of leaves (the
// positions drawn on the axis) and, for every level, the runs of adjacent
// leaves that share an ancestor, drawn as one merged header cell.
//
// # Pipeline
//
//  1. [Traverse] walks the tree depth-first, skipping subtotal subtrees.
//  2. [Collect] turns every reached leaf into a [Leaf] with its label path.
//     [RoleGroup] values go into the leaf's group key, not its path.
//  3. [Reorder] optionally sorts column leaves chronologically or
//     numerically using [sortkey.Normalize].
//  4. [Build] computes [Span] runs per level and returns a [Hierarchy].
//
// [Columns] and [Rows] bundle these steps for the two axes; row leaves are
// bucketed by group key with [GroupBy] so each panel gets its own hierarchy.
//
// # Span Invariants
//
// For every level L of a Hierarchy:
//   - spans are sorted by Start and contiguous (next.Start == prev.End+1)
//   - their union is exactly [0, LeafCount-1]
//   - two adjacent leaves share a span iff their paths agree on 0..L
//
// # Example
//
//	cols := hierarchy.Root(
//	    hierarchy.Labeled(0, hierarchy.RoleColumn, "2024",
//	        hierarchy.Labeled(1, hierarchy.RoleColumn, "Q1"),
//	        hierarchy.Labeled(1, hierarchy.RoleColumn, "Q2")),
//	)
//	h := hierarchy.Columns(cols, nil)
//	// h.SpansByLevel[0] == [{Label: "2024", Start: 0, End: 1}]
package hierarchy
