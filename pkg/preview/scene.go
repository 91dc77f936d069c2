// Package preview draws a layout frame so it can be inspected by eye.
//
// A preview is not a chart: cells carry no values. It shows where the
// column header spans, row panels, axis ticks and legend landed, which is
// enough to judge rotation, skipping, truncation and legend placement.
//
// The frame is first flattened into a [Scene] of rectangles, lines and
// text runs. [RenderPNG] rasterizes the scene with fogleman/gg using the
// embedded Go fonts; [RenderSVG] writes it as SVG markup.
//
//	frame, _ := runner.Run(ctx, table, cfg)
//	png, err := preview.RenderPNG(frame, preview.WithScale(2))
package preview

import (
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/hierarchy"
	"github.com/matzehuels/chartkit/pkg/legend"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/textmeasure"
)

// Colors used by the preview.
const (
	Background  = "#FFFFFF"
	GridColor   = "#D1D5DB"
	HeaderFill  = "#F3F4F6"
	TextColor   = "#111827"
	MutedColor  = "#6B7280"
	GradientLow = "#E0E7FF"
)

const (
	headerRowHeight = 18.0
	labelInset      = 4.0
)

// Anchor is the horizontal text anchor.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Rect is a filled and optionally stroked rectangle.
type Rect struct {
	legend.Rect
	Fill   string
	Stroke string
}

// Line is a one pixel line.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
}

// Text is a single line of text. Y is the vertical middle of the line.
// A non-zero Rotate turns the text counterclockwise by that many degrees
// around (X, Y).
type Text struct {
	X, Y   float64
	Value  string
	Size   float64
	Family string
	Anchor Anchor
	Rotate float64
	Color  string
}

// Bar is a horizontal two-stop gradient.
type Bar struct {
	legend.Rect
	From, To string
}

// Scene is a frame flattened into drawing primitives, in paint order.
type Scene struct {
	W, H  float64
	Rects []Rect
	Lines []Line
	Bars  []Bar
	Texts []Text
}

// Build flattens frame into a scene. m truncates header and panel labels
// to the space they get; nil uses a headless measurer.
func Build(frame *pipeline.Frame, m *textmeasure.Measurer) (*Scene, error) {
	if frame == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no frame to draw")
	}
	if frame.Canvas.W <= 0 || frame.Canvas.H <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %vx%v is empty", frame.Canvas.W, frame.Canvas.H)
	}
	if m == nil {
		m = textmeasure.New(textmeasure.WithoutSurface())
	}

	s := &Scene{W: frame.Canvas.W, H: frame.Canvas.H}
	s.Rects = append(s.Rects, Rect{Rect: legend.Rect{W: s.W, H: s.H}, Fill: Background})

	b := builder{scene: s, frame: frame, m: m}
	b.plot()
	b.legend()
	return s, nil
}

type builder struct {
	scene *Scene
	frame *pipeline.Frame
	m     *textmeasure.Measurer
}

// plot splits the plot rectangle into header rows on top, the tick row at
// the bottom and the panel body in between.
func (b *builder) plot() {
	f, s := b.frame, b.scene
	p := f.Plot
	if p.W <= 0 || p.H <= 0 {
		return
	}
	s.Rects = append(s.Rects, Rect{Rect: p, Stroke: GridColor})

	cols := f.Columns
	n := cols.LeafCount()
	if n == 0 {
		return
	}
	band := p.W / float64(n)
	fontSize := f.Axis.FontSize

	// Every level above the leaves becomes one header row of spans.
	levels := max(0, cols.Depth-1)
	for level := range levels {
		y := p.Y + float64(level)*headerRowHeight
		for _, sp := range cols.SpansAt(level) {
			r := legend.Rect{X: p.X + float64(sp.Start)*band, Y: y, W: float64(sp.Len()) * band, H: headerRowHeight}
			s.Rects = append(s.Rects, Rect{Rect: r, Fill: HeaderFill, Stroke: GridColor})
			s.Texts = append(s.Texts, Text{
				X:      r.X + r.W/2,
				Y:      r.Y + r.H/2,
				Value:  b.m.TruncateFamily(sp.Label, r.W-2*labelInset, fontSize, f.Axis.Family),
				Size:   fontSize,
				Family: f.Axis.Family,
				Anchor: AnchorMiddle,
				Color:  TextColor,
			})
		}
	}

	top := p.Y + float64(levels)*headerRowHeight
	tickRow := fontSize * 1.6
	if f.Axis.Decision.Rotate {
		tickRow = min(p.H/3, fontSize*5)
	}
	bottom := max(top, p.Y+p.H-tickRow)

	for i := 1; i < n; i++ {
		x := p.X + float64(i)*band
		s.Lines = append(s.Lines, Line{X1: x, Y1: top, X2: x, Y2: bottom, Color: GridColor})
	}
	b.panels(top, bottom)
	b.ticks(bottom)
}

// panels divides the body height among the row panels by leaf count.
func (b *builder) panels(top, bottom float64) {
	f, s := b.frame, b.scene
	total := 0
	for _, panel := range f.Rows {
		total += max(1, panel.Hierarchy.LeafCount())
	}
	if total == 0 || bottom <= top {
		return
	}
	unit := (bottom - top) / float64(total)
	y := top
	for i, panel := range f.Rows {
		h := unit * float64(max(1, panel.Hierarchy.LeafCount()))
		if i > 0 {
			s.Lines = append(s.Lines, Line{X1: f.Plot.X, Y1: y, X2: f.Plot.X + f.Plot.W, Y2: y, Color: GridColor})
		}
		if label := panelLabel(panel); label != "" {
			s.Texts = append(s.Texts, Text{
				X:      f.Plot.X + labelInset,
				Y:      y + min(h, headerRowHeight)/2,
				Value:  b.m.TruncateFamily(label, f.Plot.W-2*labelInset, f.Axis.FontSize, f.Axis.Family),
				Size:   f.Axis.FontSize,
				Family: f.Axis.Family,
				Color:  MutedColor,
			})
		}
		y += h
	}
}

func panelLabel(p hierarchy.Panel) string {
	if p.Group != "" {
		return p.Group
	}
	if spans := p.Hierarchy.SpansAt(0); len(spans) == 1 {
		return spans[0].Label
	}
	return ""
}

func (b *builder) ticks(bottom float64) {
	f, s := b.frame, b.scene
	ax := f.Axis
	for _, t := range ax.Ticks {
		s.Lines = append(s.Lines, Line{X1: t.Pos, Y1: bottom, X2: t.Pos, Y2: bottom + 3, Color: MutedColor})
		txt := Text{
			X:      t.Pos,
			Y:      bottom + 3 + ax.FontSize*0.6,
			Value:  t.Text,
			Size:   ax.FontSize,
			Family: ax.Family,
			Anchor: AnchorMiddle,
			Color:  TextColor,
		}
		if t.Rotated {
			txt.Anchor = AnchorEnd
			txt.Rotate = ax.Angle
		}
		s.Texts = append(s.Texts, txt)
	}
}

func (b *builder) legend() {
	lf := b.frame.Legend
	if lf == nil {
		return
	}
	s := b.scene
	opts := legend.DefaultOptions()

	if g := lf.Placement.Gradient; g != nil {
		s.Bars = append(s.Bars, Bar{Rect: g.Bar, From: GradientLow, To: legend.Palette[0]})
		y := g.LabelY + opts.RowHeight/2
		s.Texts = append(s.Texts,
			Text{X: g.Bar.X, Y: y, Value: g.MinLabel, Size: lf.FontSize, Anchor: AnchorStart, Color: TextColor},
			Text{X: g.Bar.X + g.Bar.W, Y: y, Value: g.MaxLabel, Size: lf.FontSize, Anchor: AnchorEnd, Color: TextColor},
		)
		return
	}

	for _, it := range lf.Placement.Items {
		swatch := legend.Rect{X: it.X, Y: it.Y, W: opts.Swatch, H: opts.Swatch}
		s.Rects = append(s.Rects, Rect{Rect: swatch, Fill: it.Color})
		s.Texts = append(s.Texts, Text{
			X:     it.X + opts.Swatch + opts.Gap,
			Y:     it.Y + opts.Swatch/2,
			Value: it.Label,
			Size:  lf.FontSize,
			Color: TextColor,
		})
	}
}
