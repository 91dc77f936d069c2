// Package pkg provides the chartkit layout libraries.
//
// # Overview
//
// chartkit decides how the category axis and legend of a hierarchical
// chart fit a fixed canvas. The pkg directory is organized bottom-up:
//
//  1. [textmeasure] - text widths (embedded Go fonts, LRU-cached) and ellipsis truncation
//  2. [sortkey] - sort keys for numbers, dates, months, quarters and text
//  3. [hierarchy] - category trees, leaf paths, spans, reorder and grouping
//  4. [axis] - label rotation and skip scheduling, tick instructions
//  5. [legend] - legend position parsing, space reservation and placement
//  6. [source], [settings], [pipeline], [preview] - tables in, frames out
//
// # Architecture
//
// The typical data flow through chartkit:
//
//	xlsx / JSON pivot table
//	         ↓
//	    [source] package (table → row and column trees)
//	         ↓
//	    [hierarchy] package (leaf paths, spans, panels)
//	         ↓
//	    [legend] package (reserve margin)
//	         ↓
//	    [axis] package (rotate / skip / truncate labels)
//	         ↓
//	    [pipeline.Frame] → JSON, PNG or SVG preview
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chartkit/pkg/pipeline"
//	    "github.com/matzehuels/chartkit/pkg/settings"
//	    "github.com/matzehuels/chartkit/pkg/source"
//	)
//
//	t, _ := source.Load("sales.xlsx", "")
//	cfg, _ := settings.Load("chart.toml")
//	frame, _ := pipeline.NewRunner(nil, nil).Run(context.Background(), t, cfg)
//	frame.WriteJSON(os.Stdout)
//
// The layout packages ([textmeasure], [axis], [legend], [hierarchy],
// [sortkey]) do not depend on the table or settings layers and can be used
// directly by a host that owns its own data model.
//
// [textmeasure]: github.com/matzehuels/chartkit/pkg/textmeasure
// [sortkey]: github.com/matzehuels/chartkit/pkg/sortkey
// [hierarchy]: github.com/matzehuels/chartkit/pkg/hierarchy
// [axis]: github.com/matzehuels/chartkit/pkg/axis
// [legend]: github.com/matzehuels/chartkit/pkg/legend
// [source]: github.com/matzehuels/chartkit/pkg/source
// [settings]: github.com/matzehuels/chartkit/pkg/settings
// [pipeline]: github.com/matzehuels/chartkit/pkg/pipeline
// [pipeline.Frame]: github.com/matzehuels/chartkit/pkg/pipeline#Frame
// [preview]: github.com/matzehuels/chartkit/pkg/preview
package pkg
