// Package settings holds the host-facing chart settings.
//
// Settings are usually decoded from a TOML file:
//
//	[canvas]
//	width = 960
//	height = 540
//
//	[axis]
//	rotation = "auto"
//	font_size = 11
//	sort_directions = ["asc", "desc"]
//
//	[legend]
//	position = "bottom-center"
//	max_items = 12
//
//	[table]
//	row_dimensions = 2
//	group_column = "Channel"
//
// Zero values mean "use the default"; call [Settings.ValidateAndSetDefaults]
// before handing settings to the pipeline.
package settings

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartkit/pkg/axis"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/fonts"
	"github.com/matzehuels/chartkit/pkg/hierarchy"
	"github.com/matzehuels/chartkit/pkg/legend"
)

const (
	DefaultWidth          = 800.0
	DefaultHeight         = 600.0
	DefaultFontSize       = 12.0
	DefaultLegendPosition = "top"
	DefaultLegendMaxItems = 20
	DefaultRowDimensions  = 1
)

// DefaultSubtotalMarkers label synthetic total rows.
var DefaultSubtotalMarkers = []string{"Total", "Subtotal"}

// Settings configures one chart render.
type Settings struct {
	Canvas Canvas `toml:"canvas" json:"canvas"`
	Axis   Axis   `toml:"axis" json:"axis"`
	Legend Legend `toml:"legend" json:"legend"`
	Table  Table  `toml:"table" json:"table"`

	// validated tracks whether ValidateAndSetDefaults has succeeded.
	validated bool
}

// Canvas is the drawing area in pixels.
type Canvas struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Axis configures the category axis labels.
type Axis struct {
	Rotation   string  `toml:"rotation" json:"rotation"` // auto, always or never
	Angle      float64 `toml:"angle" json:"angle"`
	FontSize   float64 `toml:"font_size" json:"font_size"`
	FontFamily string  `toml:"font_family" json:"font_family"`
	// SortDirections orders each column level, outermost first.
	SortDirections []string `toml:"sort_directions" json:"sort_directions,omitempty"`
}

// Legend configures the series legend.
type Legend struct {
	Hidden   bool     `toml:"hidden" json:"hidden,omitempty"`
	Position string   `toml:"position" json:"position"`
	MaxItems int      `toml:"max_items" json:"max_items"`
	FontSize float64  `toml:"font_size" json:"font_size"`
	Colors   []string `toml:"colors" json:"colors,omitempty"`
}

// Table describes how a pivot table maps onto hierarchies.
type Table struct {
	Sheet           string   `toml:"sheet" json:"sheet,omitempty"`
	RowDimensions   int      `toml:"row_dimensions" json:"row_dimensions"`
	GroupColumn     string   `toml:"group_column" json:"group_column,omitempty"`
	SubtotalMarkers []string `toml:"subtotal_markers" json:"subtotal_markers,omitempty"`
}

// Default returns validated settings with every default applied.
func Default() *Settings {
	s := &Settings{}
	// Defaults alone always validate.
	_ = s.ValidateAndSetDefaults()
	return s
}

// Load reads and validates a TOML settings file.
func Load(path string) (*Settings, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read settings %s", path)
	}
	return Decode(data)
}

// Decode parses TOML settings and validates them. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func Decode(data []byte) (*Settings, error) {
	var s Settings
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidSettings, "unknown settings keys: %s", strings.Join(keys, ", "))
	}
	if err := s.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateAndSetDefaults checks every field and fills zero values with
// defaults. All problems are reported together. This method is idempotent:
// calling it again after success is a no-op.
func (s *Settings) ValidateAndSetDefaults() error {
	if s.validated {
		return nil
	}
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, errors.New(errors.ErrCodeInvalidSettings, format, args...))
	}

	if s.Canvas.Width < 0 || s.Canvas.Height < 0 {
		invalid("canvas size must not be negative (got %gx%g)", s.Canvas.Width, s.Canvas.Height)
	}
	if s.Canvas.Width == 0 {
		s.Canvas.Width = DefaultWidth
	}
	if s.Canvas.Height == 0 {
		s.Canvas.Height = DefaultHeight
	}

	if _, err := axis.ParseMode(s.Axis.Rotation); err != nil {
		invalid("axis.rotation: %v", err)
	}
	if s.Axis.Rotation == "" {
		s.Axis.Rotation = axis.ModeAuto.String()
	}
	if s.Axis.Angle < 0 || s.Axis.Angle > 90 {
		invalid("axis.angle must be within [0, 90] (got %g)", s.Axis.Angle)
	}
	if s.Axis.Angle == 0 {
		s.Axis.Angle = axis.DefaultAngle
	}
	if s.Axis.FontSize < 0 {
		invalid("axis.font_size must not be negative (got %g)", s.Axis.FontSize)
	}
	if s.Axis.FontSize == 0 {
		s.Axis.FontSize = DefaultFontSize
	}
	if s.Axis.FontFamily == "" {
		s.Axis.FontFamily = fonts.DefaultFamily
	}
	for i, d := range s.Axis.SortDirections {
		switch strings.ToLower(strings.TrimSpace(d)) {
		case "asc", "ascending", "desc", "descending":
		default:
			invalid("axis.sort_directions[%d]: unknown direction %q (must be asc or desc)", i, d)
		}
	}

	if s.Legend.Position == "" {
		s.Legend.Position = DefaultLegendPosition
	}
	if s.Legend.MaxItems < 0 {
		invalid("legend.max_items must not be negative (got %d)", s.Legend.MaxItems)
	}
	if s.Legend.MaxItems == 0 {
		s.Legend.MaxItems = DefaultLegendMaxItems
	}
	if s.Legend.FontSize < 0 {
		invalid("legend.font_size must not be negative (got %g)", s.Legend.FontSize)
	}
	if s.Legend.FontSize == 0 {
		s.Legend.FontSize = s.Axis.FontSize
	}
	for _, c := range s.Legend.Colors {
		if err := errors.ValidateColor(c); err != nil {
			errs = append(errs, err)
		}
	}

	if s.Table.Sheet != "" {
		if err := errors.ValidateSheetName(s.Table.Sheet); err != nil {
			invalid("table.sheet: %s", errors.UserMessage(err))
		}
	}
	if s.Table.RowDimensions < 0 {
		invalid("table.row_dimensions must not be negative (got %d)", s.Table.RowDimensions)
	}
	if s.Table.RowDimensions == 0 {
		s.Table.RowDimensions = DefaultRowDimensions
	}
	if len(s.Table.SubtotalMarkers) == 0 {
		s.Table.SubtotalMarkers = append([]string(nil), DefaultSubtotalMarkers...)
	}

	if err := errors.Join(errors.ErrCodeInvalidSettings, errs...); err != nil {
		return err
	}
	s.validated = true
	return nil
}

// Apply runs fn on s, then validates and defaults the result again.
// Use it for overrides that arrive after loading, such as command-line flags.
func (s *Settings) Apply(fn func(*Settings)) error {
	fn(s)
	s.validated = false
	return s.ValidateAndSetDefaults()
}

// RotationMode returns the parsed axis rotation mode.
func (s *Settings) RotationMode() axis.Mode {
	m, _ := axis.ParseMode(s.Axis.Rotation)
	return m
}

// Directions returns the parsed per-level sort directions.
func (s *Settings) Directions() []hierarchy.Direction {
	dirs := make([]hierarchy.Direction, len(s.Axis.SortDirections))
	for i, d := range s.Axis.SortDirections {
		dirs[i] = hierarchy.ParseDirection(d)
	}
	return dirs
}

// LegendPosition returns the decomposed legend position.
func (s *Settings) LegendPosition() legend.Position {
	return legend.ParsePosition(s.Legend.Position)
}

// CanvasSize returns the canvas as a legend.Size.
func (s *Settings) CanvasSize() legend.Size {
	return legend.Size{W: s.Canvas.Width, H: s.Canvas.Height}
}
