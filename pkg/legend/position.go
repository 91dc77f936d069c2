package legend

import "strings"

// Dock is the canvas side a legend attaches to.
type Dock uint8

const (
	DockTop Dock = iota
	DockBottom
	DockLeft
	DockRight
)

func (d Dock) String() string {
	switch d {
	case DockBottom:
		return "bottom"
	case DockLeft:
		return "left"
	case DockRight:
		return "right"
	default:
		return "top"
	}
}

// Align positions the legend along its dock side. For top and bottom docks
// start is the left edge; for left and right docks start is the top edge.
type Align uint8

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// Position is a decomposed legend position name.
type Position struct {
	Dock    Dock  `json:"dock"`
	Align   Align `json:"align"`
	Stacked bool  `json:"stacked"`
}

// Horizontal reports whether the legend sits above or below the plot.
func (p Position) Horizontal() bool { return p.Dock == DockTop || p.Dock == DockBottom }

// Columnar reports whether items flow top-to-bottom into columns.
func (p Position) Columnar() bool { return !p.Horizontal() || p.Stacked }

func (p Position) String() string {
	s := p.Dock.String() + "-" + p.Align.String()
	if p.Stacked {
		s += "-stacked"
	}
	return s
}

// ParsePosition decomposes names like "top", "bottom-center",
// "top-left-stacked", "center-right" or "right-bottom".
//
// The dock is the first of top, bottom, left or right in the name; a bare
// "center" docks right. The remaining side or center token sets the
// alignment along the dock axis. Left and right docks are vertically
// centered unless told otherwise. Unrecognized names yield top/start.
func ParsePosition(name string) Position {
	tokens := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})

	var (
		pos      Position
		docked   bool
		dockTok  = -1
		centered bool
	)
	for i, tok := range tokens {
		switch tok {
		case "stacked":
			pos.Stacked = true
		case "center", "centre", "middle":
			centered = true
		case "top", "bottom", "left", "right":
			if !docked {
				pos.Dock = dockOf(tok)
				docked, dockTok = true, i
			}
		}
	}

	if !docked {
		if centered {
			return Position{Dock: DockRight, Align: AlignMiddle, Stacked: pos.Stacked}
		}
		return Position{Stacked: pos.Stacked}
	}

	if !pos.Horizontal() {
		pos.Align = AlignMiddle
	}
	for i, tok := range tokens {
		if i == dockTok {
			continue
		}
		if a, ok := alignOf(pos.Dock, tok); ok {
			pos.Align = a
			break
		}
	}
	return pos
}

func dockOf(tok string) Dock {
	switch tok {
	case "bottom":
		return DockBottom
	case "left":
		return DockLeft
	case "right":
		return DockRight
	default:
		return DockTop
	}
}

// alignOf maps a token to an alignment on the axis perpendicular to dock.
func alignOf(dock Dock, tok string) (Align, bool) {
	if tok == "center" || tok == "centre" || tok == "middle" {
		return AlignMiddle, true
	}
	horizontal := dock == DockTop || dock == DockBottom
	switch {
	case horizontal && tok == "left", !horizontal && tok == "top":
		return AlignStart, true
	case horizontal && tok == "right", !horizontal && tok == "bottom":
		return AlignEnd, true
	}
	return AlignStart, false
}
