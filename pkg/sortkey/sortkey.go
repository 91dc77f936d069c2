// Package sortkey converts raw cell values into totally ordered sort keys.
//
// Pivot leaves mix dates, numbers and labels such as "Mar 2023" or
// "2023-03". [Normalize] maps each of these onto a [Key] that is either
// numeric or text, and [Compare] orders two keys of the same kind. Keys of
// different kinds are incomparable; callers fall back to original order.
//
// Normalization is total: it never panics and unrecognized strings simply
// become lowercase text keys.
package sortkey

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Key.
type Kind uint8

const (
	KindText Kind = iota
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Key is a normalized sort value.
type Key struct {
	Kind Kind
	Num  float64
	Text string
}

// Numeric returns a numeric key.
func Numeric(v float64) Key { return Key{Kind: KindNumeric, Num: v} }

// Text returns a text key.
func Text(s string) Key { return Key{Kind: KindText, Text: s} }

// IsNumeric reports whether k holds a number.
func (k Key) IsNumeric() bool { return k.Kind == KindNumeric }

func (k Key) String() string {
	if k.IsNumeric() {
		return strconv.FormatFloat(k.Num, 'f', -1, 64)
	}
	return strconv.Quote(k.Text)
}

var (
	monthYearRe = regexp.MustCompile(`^([A-Za-z]{3})[-/ ]?(\d{2}|\d{4})$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Normalize maps raw to a sort key:
//
//   - time.Time: Unix milliseconds
//   - finite numbers: the value itself
//   - bool: 0 or 1
//   - string: year*100+month for "MMM YYYY", "MMM-YY", "MMM/YYYY" and
//     "YYYY-MM" forms, otherwise the lowercased string
//
// nil, NaN, infinities and unsupported types fall back to parsing label the
// same way a string value would be parsed.
func Normalize(raw any, label string) Key {
	switch v := raw.(type) {
	case time.Time:
		return Numeric(float64(v.UnixMilli()))
	case *time.Time:
		if v != nil {
			return Numeric(float64(v.UnixMilli()))
		}
	case float64:
		if finite(v) {
			return Numeric(v)
		}
	case float32:
		if f := float64(v); finite(f) {
			return Numeric(f)
		}
	case int:
		return Numeric(float64(v))
	case int8:
		return Numeric(float64(v))
	case int16:
		return Numeric(float64(v))
	case int32:
		return Numeric(float64(v))
	case int64:
		return Numeric(float64(v))
	case uint:
		return Numeric(float64(v))
	case uint8:
		return Numeric(float64(v))
	case uint16:
		return Numeric(float64(v))
	case uint32:
		return Numeric(float64(v))
	case uint64:
		return Numeric(float64(v))
	case bool:
		if v {
			return Numeric(1)
		}
		return Numeric(0)
	case string:
		return FromString(v)
	case fmt.Stringer:
		if s, ok := stringOf(v); ok {
			return FromString(s)
		}
	}
	return FromString(label)
}

// stringOf calls String, treating a panic (typically a nil receiver) as absent.
func stringOf(v fmt.Stringer) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return v.String(), true
}

// FromString parses month patterns, falling back to a lowercase text key.
func FromString(s string) Key {
	if n, ok := ParseMonth(s); ok {
		return Numeric(float64(n))
	}
	return Text(strings.ToLower(s))
}

// ParseMonth parses "MMM[-/ ]YY|YYYY" and "YYYY-MM" into year*100+month.
// Two-digit years up to 79 are 20xx, the rest 19xx.
func ParseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)

	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		month, ok := months[strings.ToLower(m[1])]
		if !ok {
			return 0, false
		}
		year, _ := strconv.Atoi(m[2])
		if len(m[2]) == 2 {
			if year <= 79 {
				year += 2000
			} else {
				year += 1900
			}
		}
		return year*100 + month, true
	}

	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return 0, false
		}
		return year*100 + month, true
	}
	return 0, false
}

// Compare orders two keys. ok is false when the kinds differ.
func Compare(a, b Key) (c int, ok bool) {
	if a.Kind != b.Kind {
		return 0, false
	}
	if a.IsNumeric() {
		return cmp.Compare(a.Num, b.Num), true
	}
	return cmp.Compare(a.Text, b.Text), true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
