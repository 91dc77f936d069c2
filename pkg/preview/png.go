package preview

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/fonts"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/textmeasure"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	measurer *textmeasure.Measurer
	faces    map[faceKey]font.Face
}

type faceKey struct {
	family string
	size   float64
}

// WithScale sets the pixel density (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithMeasurer sets the measurer used to fit header and panel labels.
func WithMeasurer(m *textmeasure.Measurer) PNGOption {
	return func(r *pngRenderer) { r.measurer = m }
}

// Render rasterizes frame.
func Render(frame *pipeline.Frame, opts ...PNGOption) (image.Image, error) {
	dc, err := rasterize(frame, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func rasterize(frame *pipeline.Frame, opts []PNGOption) (*gg.Context, error) {
	r := pngRenderer{scale: 1, faces: make(map[faceKey]font.Face)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSettings, "scale must be positive (got %v)", r.scale)
	}
	s, err := Build(frame, r.measurer)
	if err != nil {
		return nil, err
	}
	return r.draw(s)
}

// RenderPNG renders frame as PNG bytes.
func RenderPNG(frame *pipeline.Frame, opts ...PNGOption) ([]byte, error) {
	dc, err := rasterize(frame, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// SavePNG renders frame to a PNG file at path.
func SavePNG(frame *pipeline.Frame, path string, opts ...PNGOption) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := RenderPNG(frame, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func (r *pngRenderer) draw(s *Scene) (*gg.Context, error) {
	dc := gg.NewContext(int(s.W*r.scale+0.5), int(s.H*r.scale+0.5))
	dc.Scale(r.scale, r.scale)
	dc.SetLineWidth(1)

	for _, rect := range s.Rects {
		dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
		if rect.Fill != "" {
			dc.SetColor(hexColor(rect.Fill))
			if rect.Stroke != "" {
				dc.FillPreserve()
			} else {
				dc.Fill()
			}
		}
		if rect.Stroke != "" {
			dc.SetColor(hexColor(rect.Stroke))
			dc.Stroke()
		}
		dc.ClearPath()
	}

	for _, l := range s.Lines {
		dc.SetColor(hexColor(l.Color))
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	for _, bar := range s.Bars {
		g := gg.NewLinearGradient(bar.X, bar.Y, bar.X+bar.W, bar.Y)
		g.AddColorStop(0, hexColor(bar.From))
		g.AddColorStop(1, hexColor(bar.To))
		dc.SetFillStyle(g)
		dc.DrawRectangle(bar.X, bar.Y, bar.W, bar.H)
		dc.Fill()
	}

	for _, t := range s.Texts {
		if t.Value == "" || t.Size <= 0 {
			continue
		}
		face, err := r.face(t.Family, t.Size)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
		}
		dc.SetFontFace(face)
		dc.SetColor(hexColor(t.Color))
		dc.Push()
		if t.Rotate != 0 {
			dc.RotateAbout(gg.Radians(-t.Rotate), t.X, t.Y)
		}
		dc.DrawStringAnchored(t.Value, t.X, t.Y, anchorX(t.Anchor), 0.35)
		dc.Pop()
	}
	return dc, nil
}

func (r *pngRenderer) face(family string, size float64) (font.Face, error) {
	key := faceKey{family, size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(family, size)
	if err != nil {
		return nil, err
	}
	r.faces[key] = f
	return f, nil
}

func anchorX(a Anchor) float64 {
	switch a {
	case AnchorMiddle:
		return 0.5
	case AnchorEnd:
		return 1
	default:
		return 0
	}
}

// hexColor parses #RGB or #RRGGBB; anything else is drawn gray.
func hexColor(s string) color.Color {
	if errors.ValidateColor(s) != nil {
		return color.RGBA{0x9C, 0xA3, 0xAF, 0xFF}
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, _ := strconv.ParseUint(h, 16, 32)
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}
