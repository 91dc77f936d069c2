package preview

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/chartkit/pkg/fonts"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/textmeasure"
)

// RenderSVG writes frame as a standalone SVG document.
func RenderSVG(frame *pipeline.Frame, m *textmeasure.Measurer) ([]byte, error) {
	s, err := Build(frame, m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.W, s.H, s.W, s.H)

	if len(s.Bars) > 0 {
		buf.WriteString("  <defs>\n")
		for i, b := range s.Bars {
			fmt.Fprintf(&buf, `    <linearGradient id="bar-%d" x1="0" y1="0" x2="1" y2="0"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient>`+"\n",
				i, b.From, b.To)
		}
		buf.WriteString("  </defs>\n")
	}

	for _, r := range s.Rects {
		fill, stroke := r.Fill, r.Stroke
		if fill == "" {
			fill = "none"
		}
		if stroke == "" {
			stroke = "none"
		}
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
			r.X, r.Y, r.W, r.H, fill, stroke)
	}
	for _, l := range s.Lines {
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2, l.Color)
	}
	for i, b := range s.Bars {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#bar-%d)"/>`+"\n",
			b.X, b.Y, b.W, b.H, i)
	}
	for _, t := range s.Texts {
		if t.Value == "" {
			continue
		}
		var transform string
		if t.Rotate != 0 {
			transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, -t.Rotate, t.X, t.Y)
		}
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="%s" dominant-baseline="middle"%s>%s</text>`+"\n",
			t.X, t.Y, fonts.FallbackFontFamily, t.Size, t.Color, svgAnchor(t.Anchor), transform, escapeXML(t.Value))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func svgAnchor(a Anchor) string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
