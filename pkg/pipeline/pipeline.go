// Package pipeline runs one layout pass over a pivot table.
//
// A pass turns a [source.Table] and [settings.Settings] into a [Frame]:
// the column hierarchy (reordered when its leaves are numeric), one row
// hierarchy per group panel, the legend reservation and placement, the
// plot rectangle left after the legend, and the axis tick instructions for
// that plot width. The legend is reserved before the axis is scheduled so
// labels only compete for space the plot actually has.
//
// # Stages
//
// Each pass runs three stages in order, reported through
// [observability.PipelineHooks] and logged at debug level:
//
//   - hierarchy: table to row and column hierarchies
//   - legend: reservation for the group labels or the value range
//   - axis: rotation and skip decision, then tick instructions
//
// The same [Runner] may be reused across passes; its text measurer keeps
// memoized widths between them.
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/matzehuels/chartkit/pkg/axis"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/hierarchy"
	"github.com/matzehuels/chartkit/pkg/legend"
)

// Stage names reported to hooks and logs.
const (
	StageHierarchy = "hierarchy"
	StageLegend    = "legend"
	StageAxis      = "axis"
)

// Frame is the result of one layout pass.
type Frame struct {
	Table   string              `json:"table,omitempty"`
	Canvas  legend.Size         `json:"canvas"`
	Columns hierarchy.Hierarchy `json:"columns"`
	Rows    []hierarchy.Panel   `json:"rows"`
	Axis    AxisFrame           `json:"axis"`
	Legend  *LegendFrame        `json:"legend,omitempty"`
	// Plot is the area left for cells after legend and frame padding.
	Plot  legend.Rect `json:"plot"`
	Stats Stats       `json:"stats"`
}

// AxisFrame is the column axis layout.
type AxisFrame struct {
	Decision axis.Decision `json:"decision"`
	Ticks    []axis.Tick   `json:"ticks"`
	FontSize float64       `json:"font_size"`
	Family   string        `json:"family,omitempty"`
	Angle    float64       `json:"angle"`
}

// LegendFrame is the legend layout.
type LegendFrame struct {
	Position    legend.Position    `json:"position"`
	Kind        string             `json:"kind"`
	Labels      []string           `json:"labels,omitempty"`
	Reservation legend.Reservation `json:"reservation"`
	Placement   legend.Placement   `json:"placement"`
	FontSize    float64            `json:"font_size"`
}

// Stats contains pass statistics.
type Stats struct {
	Records       int           `json:"records"`
	ColumnLeaves  int           `json:"column_leaves"`
	ColumnDepth   int           `json:"column_depth"`
	Panels        int           `json:"panels"`
	VisibleTicks  int           `json:"visible_ticks"`
	HierarchyTime time.Duration `json:"hierarchy_time"`
	LegendTime    time.Duration `json:"legend_time"`
	AxisTime      time.Duration `json:"axis_time"`
}

// WriteJSON encodes f as indented JSON.
func (f *Frame) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode frame")
	}
	return nil
}
