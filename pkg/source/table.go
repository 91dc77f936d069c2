// Package source loads pivot tables and turns them into hierarchy trees.
//
// A pivot table is a header row followed by records. The leading
// RowDimensions columns hold the row hierarchy, outermost first; every
// other column is a measure whose header names its column path, with
// levels separated by "|" (for example "2024|Q1"). An optional group
// column tags each record with a series that splits row axes into panels.
//
// Compact pivot exports leave repeated outer labels blank. A blank row
// dimension followed by a non-blank one inherits the label from the
// record above; trailing blanks shorten the path instead.
package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/hierarchy"
)

// ColumnSeparator splits a measure header into column levels.
const ColumnSeparator = "|"

// DefaultSubtotalMarkers label synthetic aggregate rows and columns.
var DefaultSubtotalMarkers = []string{"Total", "Subtotal"}

// Table is a loaded pivot table. Cells hold nil, string, int64, float64,
// bool or time.Time values.
type Table struct {
	Name   string   `json:"name,omitempty"`
	Header []string `json:"header"`
	Rows   [][]any  `json:"rows"`
	// Text holds the trimmed source text of each cell, parallel to Rows.
	// Labels come from it, so "007" and "7" stay distinct categories.
	// A missing entry falls back to the formatted cell value.
	Text [][]string `json:"-"`
}

// Options maps table columns onto hierarchies.
type Options struct {
	RowDimensions int
	// GroupColumn names the header of the series column, if any.
	GroupColumn     string
	SubtotalMarkers []string
}

func (o Options) markers() []string {
	if len(o.SubtotalMarkers) == 0 {
		return DefaultSubtotalMarkers
	}
	return o.SubtotalMarkers
}

// FromRecords builds a Table from string records, parsing numbers, booleans
// and ISO dates. Blank cells become nil.
func FromRecords(header []string, records [][]string) *Table {
	t := &Table{
		Header: trimAll(header),
		Rows:   make([][]any, 0, len(records)),
		Text:   make([][]string, 0, len(records)),
	}
	for _, rec := range records {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = parseValue(cell)
		}
		t.Rows = append(t.Rows, row)
		t.Text = append(t.Text, trimAll(rec))
	}
	return t
}

// parseValue attempts to parse a cell as an integer, float, boolean or date
// before keeping it as a string.
func parseValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil && len(s) > 1 {
		return b
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return s
}

// cellText formats a cell value as a label.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// Cell returns the value at row r, column c, or nil when out of range.
func (t *Table) Cell(r, c int) any {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return nil
	}
	return t.Rows[r][c]
}

// Label returns the display text of the cell at row r, column c.
func (t *Table) Label(r, c int) string {
	if r >= 0 && r < len(t.Text) && c >= 0 && c < len(t.Text[r]) {
		return t.Text[r][c]
	}
	return cellText(t.Cell(r, c))
}

// layout resolves which columns are row dimensions, the group and measures.
type layout struct {
	dims     []int
	group    int
	measures []int
}

func (t *Table) layout(opts Options) (layout, error) {
	l := layout{group: -1}
	if len(t.Header) == 0 {
		return l, errors.New(errors.ErrCodeInvalidInput, "table %q has no header row", t.Name)
	}
	if opts.RowDimensions < 0 {
		return l, errors.New(errors.ErrCodeInvalidInput, "row dimensions must not be negative (got %d)", opts.RowDimensions)
	}
	if opts.GroupColumn != "" {
		for i, h := range t.Header {
			if strings.EqualFold(h, opts.GroupColumn) {
				l.group = i
				break
			}
		}
		if l.group < 0 {
			return l, errors.New(errors.ErrCodeInvalidInput, "group column %q not found in header", opts.GroupColumn)
		}
	}
	for i := range t.Header {
		switch {
		case i == l.group:
		case len(l.dims) < opts.RowDimensions:
			l.dims = append(l.dims, i)
		default:
			l.measures = append(l.measures, i)
		}
	}
	if len(l.dims) < opts.RowDimensions {
		return l, errors.New(errors.ErrCodeInvalidInput,
			"table has %d usable columns, fewer than %d row dimensions", len(l.dims), opts.RowDimensions)
	}
	return l, nil
}

// Trees builds the row and column hierarchy trees of t.
func (t *Table) Trees(opts Options) (rows, cols *hierarchy.Node, err error) {
	l, err := t.layout(opts)
	if err != nil {
		return nil, nil, err
	}
	markers := opts.markers()
	return t.rowTree(l, markers), t.columnTree(l, markers), nil
}

// MeasureHeaders returns the headers of the measure columns in order.
func (t *Table) MeasureHeaders(opts Options) ([]string, error) {
	l, err := t.layout(opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(l.measures))
	for i, c := range l.measures {
		out[i] = t.Header[c]
	}
	return out, nil
}

// NumericRange returns the smallest and largest numeric measure value.
// Subtotal rows and subtotal columns are ignored.
func (t *Table) NumericRange(opts Options) (lo, hi float64, ok bool) {
	l, err := t.layout(opts)
	if err != nil {
		return 0, 0, false
	}
	markers := opts.markers()
	var measures []int
	for _, c := range l.measures {
		if !subtotalHeader(t.Header[c], markers) {
			measures = append(measures, c)
		}
	}
	for r := range t.Rows {
		if t.subtotalRow(r, l, markers) {
			continue
		}
		for _, c := range measures {
			if f, isNum := numeric(t.Cell(r, c)); isNum {
				if !ok {
					lo, hi, ok = f, f, true
					continue
				}
				lo, hi = min(lo, f), max(hi, f)
			}
		}
	}
	return lo, hi, ok
}

func (t *Table) subtotalRow(r int, l layout, markers []string) bool {
	for _, c := range l.dims {
		if isSubtotal(t.Label(r, c), markers) {
			return true
		}
	}
	return false
}

func subtotalHeader(h string, markers []string) bool {
	for _, part := range strings.Split(h, ColumnSeparator) {
		if isSubtotal(part, markers) {
			return true
		}
	}
	return false
}

func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	}
	return 0, false
}

// isSubtotal reports whether label is a marker or ends in one ("Grand Total").
func isSubtotal(label string, markers []string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return false
	}
	for _, m := range markers {
		m = strings.ToLower(m)
		if label == m || strings.HasSuffix(label, " "+m) {
			return true
		}
	}
	return false
}
