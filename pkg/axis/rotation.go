// Package axis decides how category axis labels are laid out.
//
// [Schedule] chooses, for a set of labels competing for a fixed width,
// whether to rotate them and how many to skip so that visible labels do not
// overlap. [BuildTicks] turns that decision into per-tick render
// instructions with already truncated text.
package axis

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultAngle is the rotation applied to labels, in degrees.
	DefaultAngle = 45.0

	// labelPadding is the minimum horizontal gap between two labels.
	labelPadding = 4.0
)

// Mode selects the rotation policy.
type Mode uint8

const (
	// ModeAuto rotates only when that shows more labels.
	ModeAuto Mode = iota
	// ModeAlways rotates every label.
	ModeAlways
	// ModeNever keeps labels horizontal.
	ModeNever
)

func (m Mode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseMode parses "auto", "always" or "never" (case-insensitive).
// The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("invalid rotation mode %q (must be one of: auto, always, never)", s)
	}
}

// Measurer measures label text. *textmeasure.Measurer satisfies it.
type Measurer interface {
	MeasureMax(labels []string, fontSize float64, family string) float64
	TruncateFamily(text string, maxWidth, fontSize float64, family string) string
}

// Request describes one axis of labels.
type Request struct {
	Mode           Mode
	Labels         []string
	AvailableWidth float64
	FontSize       float64
	Family         string
	// AngleDeg is the rotation angle; zero means DefaultAngle.
	AngleDeg float64
}

func (r Request) angle() float64 {
	if r.AngleDeg == 0 {
		return DefaultAngle
	}
	return r.AngleDeg
}

// Decision is the chosen label layout. SkipInterval k renders labels
// 0, k, 2k, … and always the last label.
type Decision struct {
	Rotate       bool `json:"rotate"`
	SkipInterval int  `json:"skip_interval"`
}

// Schedule decides whether to rotate labels and which to skip.
//
// Both the horizontal width of the widest label and its footprint when
// rotated (w·cosθ + fontSize·sinθ) are tried; for each the smallest skip
// whose per-label space fits the label plus padding wins. ModeAuto prefers
// whichever shows more labels and keeps labels horizontal on a tie.
//
// The result depends only on req and the measurer's widths; calling
// Schedule twice with the same arguments yields the same Decision.
func Schedule(m Measurer, req Request) Decision {
	n := len(req.Labels)
	switch {
	case n == 0:
		return Decision{SkipInterval: 1}
	case n == 1, req.AvailableWidth <= 0, req.FontSize <= 0:
		return Decision{Rotate: req.Mode == ModeAlways, SkipInterval: 1}
	}

	theta := req.angle() * math.Pi / 180
	maxWidth := m.MeasureMax(req.Labels, req.FontSize, req.Family)
	rotatedWidth := maxWidth*math.Cos(theta) + req.FontSize*math.Sin(theta)

	skipNoRotate := MinimalSkip(n, maxWidth, req.AvailableWidth)
	skipRotate := MinimalSkip(n, rotatedWidth, req.AvailableWidth)

	switch req.Mode {
	case ModeAlways:
		return Decision{Rotate: true, SkipInterval: skipRotate}
	case ModeNever:
		return Decision{SkipInterval: skipNoRotate}
	}

	switch {
	case skipNoRotate == 1:
		return Decision{SkipInterval: 1}
	case skipRotate == 1:
		return Decision{Rotate: true, SkipInterval: 1}
	case skipRotate < skipNoRotate:
		return Decision{Rotate: true, SkipInterval: skipRotate}
	default:
		return Decision{SkipInterval: skipNoRotate}
	}
}

// MinimalSkip returns the smallest skip in 1..n for which a label of width w
// plus padding fits in the space each visible label gets. If none fits it
// returns n. The loop is bounded by n.
func MinimalSkip(n int, w, availableWidth float64) int {
	if n <= 1 {
		return 1
	}
	for skip := 1; skip <= n; skip++ {
		space := availableWidth / float64(VisibleCount(n, skip))
		if w+labelPadding <= space {
			return skip
		}
	}
	return n
}

// VisibleCount returns how many of n labels render at the given skip,
// counting the last label even when it falls off the stride.
func VisibleCount(n, skip int) int {
	if n <= 0 {
		return 0
	}
	skip = max(1, skip)
	count := (n-1)/skip + 1
	if (n-1)%skip != 0 {
		count++
	}
	return count
}

// Visible lists the label indices rendered at the given skip.
func Visible(n, skip int) []int {
	if n <= 0 {
		return nil
	}
	skip = max(1, skip)
	idx := make([]int, 0, VisibleCount(n, skip))
	for i := 0; i < n; i += skip {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}
