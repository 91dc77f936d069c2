// Package textmeasure measures and fits label text for chart layout.
//
// A [Measurer] renders strings onto an off-screen 2D surface (a fogleman/gg
// context holding an embedded Go font face) and reports their advance
// width. Results are memoized in a bounded LRU cache keyed by text, font
// size and family. When no surface is available the measurer falls back to
// a deterministic estimate of 0.6 × fontSize per display cell, so layout
// still works in headless environments.
//
// [Measurer.Truncate] shortens a label with a trailing ellipsis using a
// binary search over prefix length, so a label of n runes costs O(log n)
// measurements.
package textmeasure

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/fonts"
)

const (
	// DefaultCacheSize is the number of widths kept by a Measurer.
	DefaultCacheSize = 2000

	// charWidthRatio approximates one display cell as a fraction of the font size.
	charWidthRatio = 0.6
)

type widthKey struct {
	text   string
	size   float64
	family string
}

type faceKey struct {
	family string
	size   float64
}

// Measurer measures text widths. It is safe for concurrent use.
type Measurer struct {
	mu       sync.Mutex
	widths   cache.Cache[widthKey, float64]
	faces    map[faceKey]font.Face
	surface  *gg.Context
	family   string
	headless bool
	logger   *log.Logger
}

// Option configures a Measurer.
type Option func(*Measurer)

// WithCacheSize bounds the width cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(m *Measurer) { m.widths = cache.New[widthKey, float64](n) }
}

// WithoutSurface forces the character-count estimate instead of font metrics.
func WithoutSurface() Option { return func(m *Measurer) { m.headless = true } }

// WithFamily sets the family used by Truncate and other family-less calls.
func WithFamily(family string) Option { return func(m *Measurer) { m.family = family } }

// WithLogger sets the logger used for surface diagnostics.
func WithLogger(l *log.Logger) Option { return func(m *Measurer) { m.logger = l } }

// New creates a Measurer.
func New(opts ...Option) *Measurer {
	m := &Measurer{
		widths: cache.NewLRU[widthKey, float64](DefaultCacheSize),
		faces:  make(map[faceKey]font.Face),
		family: fonts.DefaultFamily,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if !m.headless {
		m.surface = gg.NewContext(1, 1)
	}
	return m
}

// Family returns the default family.
func (m *Measurer) Family() string { return m.family }

// Headless reports whether widths are estimated rather than measured.
func (m *Measurer) Headless() bool { return m.headless || m.surface == nil }

// MeasureWidth returns the advance width of text in pixels. For multi-line
// text the widest line wins. An empty family uses the measurer's default.
func (m *Measurer) MeasureWidth(text string, fontSize float64, family string) float64 {
	if text == "" || fontSize <= 0 {
		return 0
	}
	if family == "" {
		family = m.family
	}
	key := widthKey{text: text, size: fontSize, family: family}

	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.widths.Get(key); ok {
		return w
	}
	var w float64
	for _, line := range strings.Split(text, "\n") {
		w = max(w, m.measureLine(line, fontSize, family))
	}
	m.widths.Set(key, w)
	return w
}

// MeasureMax returns the widest label, or 0 for an empty set.
func (m *Measurer) MeasureMax(labels []string, fontSize float64, family string) float64 {
	var w float64
	for _, l := range labels {
		w = max(w, m.MeasureWidth(l, fontSize, family))
	}
	return w
}

// CacheLen reports how many widths are memoized.
func (m *Measurer) CacheLen() int { return m.widths.Len() }

// Clear drops memoized widths and font faces.
func (m *Measurer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widths.Clear()
	for k, f := range m.faces {
		f.Close()
		delete(m.faces, k)
	}
}

// measureLine must be called with mu held.
func (m *Measurer) measureLine(line string, fontSize float64, family string) float64 {
	if line == "" {
		return 0
	}
	if m.Headless() {
		return estimateWidth(line, fontSize)
	}
	face, err := m.face(family, fontSize)
	if err != nil {
		m.logger.Debug("font face unavailable, estimating width", "family", family, "size", fontSize, "err", err)
		return estimateWidth(line, fontSize)
	}
	m.surface.SetFontFace(face)
	w, _ := m.surface.MeasureString(line)
	return w
}

func (m *Measurer) face(family string, size float64) (font.Face, error) {
	k := faceKey{family: family, size: size}
	if f, ok := m.faces[k]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(family, size)
	if err != nil {
		return nil, err
	}
	m.faces[k] = f
	return f, nil
}

// estimateWidth is the surface-free heuristic. Wide (East Asian) runes
// count as two cells.
func estimateWidth(line string, fontSize float64) float64 {
	return float64(runewidth.StringWidth(line)) * fontSize * charWidthRatio
}
