package pipeline

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/axis"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/hierarchy"
	"github.com/matzehuels/chartkit/pkg/legend"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/settings"
	"github.com/matzehuels/chartkit/pkg/source"
	"github.com/matzehuels/chartkit/pkg/textmeasure"
)

// Runner executes layout passes.
//
// The Runner is stateless except for the text measurer's width cache and
// the logger; it does not store frames. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Measurer *textmeasure.Measurer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil measurer gets a default one with a
// measurement surface; a nil logger discards output.
func NewRunner(m *textmeasure.Measurer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if m == nil {
		m = textmeasure.New(textmeasure.WithLogger(logger))
	}
	return &Runner{Measurer: m, Logger: logger}
}

// Run lays out t under s. s is validated and defaulted in place; a nil s
// uses settings.Default.
func (r *Runner) Run(ctx context.Context, t *source.Table, s *settings.Settings) (*Frame, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no table to lay out")
	}
	if s == nil {
		s = settings.Default()
	}
	if err := s.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	frame := &Frame{
		Table:  t.Name,
		Canvas: s.CanvasSize(),
		Stats:  Stats{Records: len(t.Rows)},
	}

	// Stage 1: Hierarchy
	start := time.Now()
	observability.Pipeline().OnStageStart(ctx, StageHierarchy, len(t.Rows))
	err := r.buildHierarchies(ctx, t, s, frame)
	frame.Stats.HierarchyTime = time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, StageHierarchy, frame.Stats.HierarchyTime, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("built hierarchies",
		"columns", frame.Columns.LeafCount(),
		"depth", frame.Columns.Depth,
		"panels", len(frame.Rows),
		"duration", frame.Stats.HierarchyTime)

	// Stage 2: Legend reservation
	start = time.Now()
	req, ok := r.legendRequest(t, s, frame)
	observability.Pipeline().OnStageStart(ctx, StageLegend, len(req.Labels))
	engine := legend.NewEngine(r.Measurer, legend.WithLogger(r.Logger))
	var res legend.Reservation
	if ok {
		res = engine.Reserve(req, frame.Canvas)
	}
	frame.Plot = plotRect(frame.Canvas, res.Margin, engine.Options().FramePadding)
	frame.Stats.LegendTime = time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, StageLegend, frame.Stats.LegendTime, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Axis
	start = time.Now()
	labels := frame.Columns.Labels()
	observability.Pipeline().OnStageStart(ctx, StageAxis, len(labels))
	axisReq := axis.Request{
		Mode:           s.RotationMode(),
		Labels:         labels,
		AvailableWidth: frame.Plot.W,
		FontSize:       s.Axis.FontSize,
		Family:         s.Axis.FontFamily,
		AngleDeg:       s.Axis.Angle,
	}
	positions := axis.BandCenters(len(labels), frame.Plot.W)
	for i := range positions {
		positions[i] += frame.Plot.X
	}
	decision, ticks := axis.BuildTicks(r.Measurer, axisReq, positions)
	frame.Axis = AxisFrame{
		Decision: decision,
		Ticks:    ticks,
		FontSize: s.Axis.FontSize,
		Family:   s.Axis.FontFamily,
		Angle:    s.Axis.Angle,
	}
	frame.Stats.VisibleTicks = len(ticks)
	frame.Stats.AxisTime = time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, StageAxis, frame.Stats.AxisTime, nil)
	r.Logger.Debug("scheduled axis labels",
		"labels", len(labels),
		"rotate", decision.Rotate,
		"skip", decision.SkipInterval,
		"duration", frame.Stats.AxisTime)

	// Layout is final: place the legend.
	if ok {
		frame.Legend = &LegendFrame{
			Position:    req.Position,
			Kind:        kindName(req.Kind),
			Labels:      req.Labels,
			Reservation: res,
			Placement:   engine.Place(req, res, frame.Canvas, nil),
			FontSize:    req.FontSize,
		}
	}
	return frame, nil
}

func (r *Runner) buildHierarchies(ctx context.Context, t *source.Table, s *settings.Settings, frame *Frame) error {
	rows, cols, err := t.Trees(tableOptions(s))
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	frame.Columns = hierarchy.Columns(cols, s.Directions())
	frame.Rows = hierarchy.Rows(rows)
	frame.Stats.ColumnLeaves = frame.Columns.LeafCount()
	frame.Stats.ColumnDepth = frame.Columns.Depth
	frame.Stats.Panels = len(frame.Rows)
	return nil
}

func tableOptions(s *settings.Settings) source.Options {
	return source.Options{
		RowDimensions:   s.Table.RowDimensions,
		GroupColumn:     s.Table.GroupColumn,
		SubtotalMarkers: s.Table.SubtotalMarkers,
	}
}

// legendRequest picks the legend flavor: one ordinal item per group panel,
// otherwise a gradient over the numeric value range. ok is false when
// there is nothing to show.
func (r *Runner) legendRequest(t *source.Table, s *settings.Settings, frame *Frame) (legend.Request, bool) {
	req := legend.Request{
		Position: s.LegendPosition(),
		MaxItems: s.Legend.MaxItems,
		FontSize: s.Legend.FontSize,
		Family:   s.Axis.FontFamily,
		Colors:   s.Legend.Colors,
	}
	if s.Legend.Hidden {
		return req, false
	}

	for _, p := range frame.Rows {
		if p.Group != "" {
			req.Labels = append(req.Labels, p.Group)
		}
	}
	if len(req.Labels) > 0 {
		req.Kind = legend.KindOrdinal
		return req, true
	}

	lo, hi, ok := t.NumericRange(tableOptions(s))
	if !ok {
		return req, false
	}
	req.Kind = legend.KindGradient
	req.MinLabel = strconv.FormatFloat(lo, 'g', 6, 64)
	req.MaxLabel = strconv.FormatFloat(hi, 'g', 6, 64)
	return req, true
}

// plotRect is the canvas inset by padding, minus the legend margin.
func plotRect(canvas legend.Size, m legend.Margin, padding float64) legend.Rect {
	inner := legend.Rect{W: canvas.W, H: canvas.H}.Inset(padding)
	return legend.Rect{
		X: inner.X + m.Left,
		Y: inner.Y + m.Top,
		W: max(0, inner.W-m.Left-m.Right),
		H: max(0, inner.H-m.Top-m.Bottom),
	}
}

func kindName(k legend.Kind) string {
	if k == legend.KindGradient {
		return "gradient"
	}
	return "ordinal"
}
