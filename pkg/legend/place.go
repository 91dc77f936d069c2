package legend

// Palette is the default swatch color cycle.
var Palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Item is one placed ordinal legend entry. X and Y are the swatch's top
// left corner in canvas coordinates.
type Item struct {
	Index int     `json:"index"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Gradient is a placed continuous color bar.
type Gradient struct {
	Bar      Rect   `json:"bar"`
	MinLabel string `json:"min_label"`
	MaxLabel string `json:"max_label"`
	// LabelY is the baseline row for the min and max labels.
	LabelY float64 `json:"label_y"`
}

// Placement is the final legend layout.
type Placement struct {
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Items    []Item    `json:"items,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

// Place lays out a legend with the default metrics.
func Place(m Measurer, req Request, res Reservation, canvas Size, frame *Rect) Placement {
	return NewEngine(m).Place(req, res, canvas, frame)
}

// Place aligns the reserved block inside frame and positions every item.
// A nil frame means the canvas inset by FramePadding. The origin is
// clamped so the block starts inside the frame.
func (e *Engine) Place(req Request, res Reservation, canvas Size, frame *Rect) Placement {
	f := Rect{W: canvas.W, H: canvas.H}.Inset(e.opts.FramePadding)
	if frame != nil {
		f = *frame
	}
	x, y := origin(req.Position, res.Block, f)
	p := Placement{X: x, Y: y}

	if req.Kind == KindGradient {
		o := e.opts
		p.Gradient = &Gradient{
			Bar:      Rect{X: x, Y: y, W: o.GradientWidth, H: o.GradientHeight},
			MinLabel: req.MinLabel,
			MaxLabel: req.MaxLabel,
			LabelY:   y + o.GradientHeight,
		}
		return p
	}

	labels := req.visible()
	if len(labels) == 0 || res.Rows == 0 || res.Cols == 0 {
		return p
	}
	o := e.opts
	textW := max(0, min(o.TextCap, res.ColWidth-o.Swatch-o.Gap-o.Padding))
	colors := req.Colors
	if len(colors) == 0 {
		colors = Palette
	}

	p.Items = make([]Item, 0, len(labels))
	for i, label := range labels {
		var row, col int
		if req.Position.Columnar() {
			col, row = i/res.Rows, i%res.Rows
		} else {
			row, col = i/res.Cols, i%res.Cols
		}
		p.Items = append(p.Items, Item{
			Index: i,
			Row:   row,
			Col:   col,
			X:     x + float64(col)*res.ColWidth,
			Y:     y + float64(row)*o.RowHeight,
			Label: e.m.TruncateFamily(label, textW, req.fontSize(), req.Family),
			Color: colors[i%len(colors)],
		})
	}
	e.logger.Debug("legend placed", "x", x, "y", y, "items", len(p.Items))
	return p
}

// origin aligns a block of size b against the dock side of frame f.
func origin(p Position, b Size, f Rect) (x, y float64) {
	along := func(start, length, size float64, a Align) float64 {
		switch a {
		case AlignMiddle:
			return start + (length-size)/2
		case AlignEnd:
			return start + length - size
		default:
			return start
		}
	}

	switch p.Dock {
	case DockBottom:
		x, y = along(f.X, f.W, b.W, p.Align), f.Y+f.H-b.H
	case DockLeft:
		x, y = f.X, along(f.Y, f.H, b.H, p.Align)
	case DockRight:
		x, y = f.X+f.W-b.W, along(f.Y, f.H, b.H, p.Align)
	default:
		x, y = along(f.X, f.W, b.W, p.Align), f.Y
	}
	return clamp(x, f.X, f.X+f.W-b.W), clamp(y, f.Y, f.Y+f.H-b.H)
}
