// Package legend reserves space for a chart legend and lays out its items.
//
// Layout happens in two calls. [Engine.Reserve] runs before the plot area
// is fixed and returns the margin the legend needs on its dock side.
// [Engine.Place] runs once margins are final and returns the legend origin
// plus a grid position, truncated label and swatch color for each item.
package legend

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// DefaultFontSize is used when a Request carries no font size.
const DefaultFontSize = 12.0

// Kind selects the legend flavor.
type Kind uint8

const (
	// KindOrdinal is a categorical legend with one swatch per label.
	KindOrdinal Kind = iota
	// KindGradient is a continuous color bar with min and max labels.
	KindGradient
)

// Options holds the fixed legend metrics in pixels.
type Options struct {
	Swatch         float64
	Gap            float64
	Padding        float64
	TextCap        float64
	MinItemWidth   float64
	MaxItemWidth   float64
	RowHeight      float64
	FramePadding   float64
	MaxRatio       float64
	GradientWidth  float64
	GradientHeight float64
}

// DefaultOptions returns the stock legend metrics.
func DefaultOptions() Options {
	return Options{
		Swatch:         12,
		Gap:            6,
		Padding:        10,
		TextCap:        120,
		MinItemWidth:   40,
		MaxItemWidth:   180,
		RowHeight:      18,
		FramePadding:   12,
		MaxRatio:       0.35,
		GradientWidth:  120,
		GradientHeight: 10,
	}
}

// Measurer measures and truncates legend labels. *textmeasure.Measurer
// satisfies it.
type Measurer interface {
	MeasureWidth(text string, fontSize float64, family string) float64
	TruncateFamily(text string, maxWidth, fontSize float64, family string) string
}

// Request describes one legend.
type Request struct {
	Position Position
	Kind     Kind
	Labels   []string
	// MaxItems caps the visible ordinal items; zero or less shows all.
	MaxItems int
	FontSize float64
	Family   string
	// Colors overrides the swatch colors; items cycle through it.
	Colors []string
	// MinLabel and MaxLabel annotate a gradient legend.
	MinLabel string
	MaxLabel string
}

func (r Request) fontSize() float64 {
	if r.FontSize <= 0 {
		return DefaultFontSize
	}
	return r.FontSize
}

// visible returns the labels left after MaxItems.
func (r Request) visible() []string {
	if r.MaxItems > 0 && len(r.Labels) > r.MaxItems {
		return r.Labels[:r.MaxItems]
	}
	return r.Labels
}

type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Inset shrinks r by d on every side, never below zero size.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: max(0, r.W-2*d), H: max(0, r.H-2*d)}
}

// Margin is added to the plot margins. Only the dock side is non-zero.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Reservation is the space a legend claims before layout is final.
type Reservation struct {
	Margin Margin `json:"margin"`
	Block  Size   `json:"block"`
	// Rows and Cols describe the item grid; ColWidth is one grid column.
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	ColWidth float64 `json:"col_width"`
	Items    int     `json:"items"`
}

// Empty reports whether nothing was reserved.
func (r Reservation) Empty() bool { return r.Block.W == 0 && r.Block.H == 0 }

// Engine computes legend reservations and placements.
type Engine struct {
	m      Measurer
	opts   Options
	logger *log.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithOptions replaces the default metrics. Non-positive row height, item
// width bounds or height ratio keep their default values so grid sizes
// never divide by zero.
func WithOptions(o Options) EngineOption { return func(e *Engine) { e.opts = o.withDefaults() } }

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RowHeight <= 0 {
		o.RowHeight = d.RowHeight
	}
	if o.MinItemWidth <= 0 {
		o.MinItemWidth = d.MinItemWidth
	}
	if o.MaxItemWidth <= 0 {
		o.MaxItemWidth = d.MaxItemWidth
	}
	if o.MaxRatio <= 0 {
		o.MaxRatio = d.MaxRatio
	}
	return o
}

// WithLogger sets the logger for layout diagnostics.
func WithLogger(l *log.Logger) EngineOption { return func(e *Engine) { e.logger = l } }

// NewEngine creates an Engine that measures labels with m.
func NewEngine(m Measurer, opts ...EngineOption) *Engine {
	e := &Engine{m: m, opts: DefaultOptions()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return e
}

// Options returns the metrics in use.
func (e *Engine) Options() Options { return e.opts }

// Reserve computes the legend's margin on its dock side.
func Reserve(m Measurer, req Request, canvas Size) Reservation {
	return NewEngine(m).Reserve(req, canvas)
}

// Reserve computes the block size and the margin the legend needs on its
// dock side of canvas.
//
// Ordinal items share one column width derived from the widest label.
// Horizontal legends wrap left to right into rows; left/right or stacked
// legends fill columns top to bottom. A stacked legend on the top or
// bottom never takes more than MaxRatio of the available height, which is
// the canvas inset by FramePadding.
func (e *Engine) Reserve(req Request, canvas Size) Reservation {
	var res Reservation
	if req.Kind == KindGradient {
		res = e.reserveGradient()
	} else {
		res = e.reserveOrdinal(req, canvas)
	}
	res.Margin = marginFor(req.Position, res.Block)

	e.logger.Debug("legend reserved",
		"position", req.Position,
		"items", res.Items,
		"rows", res.Rows,
		"cols", res.Cols,
		"block", res.Block,
	)
	return res
}

func (e *Engine) reserveGradient() Reservation {
	o := e.opts
	return Reservation{
		Block: Size{W: o.GradientWidth, H: o.GradientHeight + o.RowHeight},
		Rows:  1,
		Cols:  1,
	}
}

func (e *Engine) reserveOrdinal(req Request, canvas Size) Reservation {
	labels := req.visible()
	n := len(labels)
	if n == 0 {
		return Reservation{}
	}

	o := e.opts
	colW := e.columnWidth(labels, req)
	avail := Rect{W: canvas.W, H: canvas.H}.Inset(o.FramePadding)
	res := Reservation{ColWidth: colW, Items: n}

	if !req.Position.Columnar() {
		perRow := min(n, max(1, int(math.Floor(avail.W/colW))))
		res.Cols = perRow
		res.Rows = ceilDiv(n, perRow)
	} else {
		availH := avail.H
		if req.Position.Horizontal() {
			availH = min(availH, o.MaxRatio*avail.H)
		}
		perCol := min(n, max(1, int(math.Floor(availH/o.RowHeight))))
		res.Rows = perCol
		res.Cols = ceilDiv(n, perCol)
	}
	res.Block = Size{W: float64(res.Cols) * colW, H: float64(res.Rows) * o.RowHeight}
	return res
}

// columnWidth is swatch + gap + capped label width + padding, clamped to
// the item width bounds.
func (e *Engine) columnWidth(labels []string, req Request) float64 {
	o := e.opts
	var labelW float64
	for _, l := range labels {
		labelW = max(labelW, e.m.MeasureWidth(l, req.fontSize(), req.Family))
	}
	w := o.Swatch + o.Gap + min(o.TextCap, labelW) + o.Padding
	return clamp(w, o.MinItemWidth, o.MaxItemWidth)
}

func marginFor(p Position, block Size) Margin {
	switch p.Dock {
	case DockBottom:
		return Margin{Bottom: block.H}
	case DockLeft:
		return Margin{Left: block.W}
	case DockRight:
		return Margin{Right: block.W}
	default:
		return Margin{Top: block.H}
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// clamp bounds v to [lo, hi]; when hi < lo, lo wins.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
