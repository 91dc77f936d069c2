// Package fonts provides the embedded font faces used for text measurement.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so measurement works without any system font installation. Host
// font families (for example "Segoe UI") are mapped onto the closest Go
// variant by [VariantFor].
package fonts

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is the font family used when none is given.
const DefaultFamily = "Segoe UI"

// FallbackFontFamily is the CSS font stack renderers emit alongside measured text.
const FallbackFontFamily = `'Segoe UI', wf_segoe-ui_normal, helvetica, arial, sans-serif`

// Variant identifies one embedded font file.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	Mono
	MonoBold
)

var variantTTF = map[Variant][]byte{
	Regular:  goregular.TTF,
	Bold:     gobold.TTF,
	Italic:   goitalic.TTF,
	Mono:     gomono.TTF,
	MonoBold: gomonobold.TTF,
}

// VariantFor maps a font family name onto an embedded variant.
// Monospace families (mono, courier, consolas) map to Go Mono; a family
// naming a bold or italic weight maps to the matching Go variant.
func VariantFor(family string) Variant {
	f := strings.ToLower(family)
	mono := strings.Contains(f, "mono") || strings.Contains(f, "courier") || strings.Contains(f, "consolas")
	bold := strings.Contains(f, "bold") || strings.Contains(f, "semibold")
	switch {
	case mono && bold:
		return MonoBold
	case mono:
		return Mono
	case bold:
		return Bold
	case strings.Contains(f, "italic"):
		return Italic
	default:
		return Regular
	}
}

// Parsed fonts are immutable and shared; parsing happens once per variant.
var (
	parsedMu sync.Mutex
	parsed   = make(map[Variant]*opentype.Font)
)

// Parse returns the parsed font for a variant, parsing it on first use.
func Parse(v Variant) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if f, ok := parsed[v]; ok {
		return f, nil
	}
	data, ok := variantTTF[v]
	if !ok {
		data = goregular.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	parsed[v] = f
	return f, nil
}

// NewFace creates a face for family at size pixels (72 DPI, so points equal
// pixels). Faces are not safe for concurrent use; callers own the result.
func NewFace(family string, size float64) (font.Face, error) {
	f, err := Parse(VariantFor(family))
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
