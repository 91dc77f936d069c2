package sortkey

import (
	"math"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		raw   any
		label string
		want  Key
	}{
		{"date", date, "", Numeric(float64(date.UnixMilli()))},
		{"date pointer", &date, "", Numeric(float64(date.UnixMilli()))},
		{"float", 3.5, "", Numeric(3.5)},
		{"int", 42, "", Numeric(42)},
		{"int64", int64(-7), "", Numeric(-7)},
		{"uint8", uint8(9), "", Numeric(9)},
		{"bool true", true, "", Numeric(1)},
		{"bool false", false, "", Numeric(0)},
		{"month year", "Mar 2023", "", Numeric(202303)},
		{"month dash short year", "mar-23", "", Numeric(202303)},
		{"month slash old year", "DEC/99", "", Numeric(199912)},
		{"two digit year boundary", "Jan 79", "", Numeric(207901)},
		{"two digit year past boundary", "Jan 80", "", Numeric(198001)},
		{"month without separator", "Sep2021", "", Numeric(202109)},
		{"year month", "2023-03", "", Numeric(202303)},
		{"year single digit month", "2023-3", "", Numeric(202303)},
		{"year invalid month", "2023-13", "", Text("2023-13")},
		{"unknown month", "Foo 2023", "", Text("foo 2023")},
		{"plain text", "North America", "", Text("north america")},
		{"numeric string stays text", "2024", "", Text("2024")},
		{"nil uses label", nil, "Apr 2020", Numeric(202004)},
		{"nil uses label text", nil, "West", Text("west")},
		{"nil empty label", nil, "", Text("")},
		{"NaN uses label", math.NaN(), "Other", Text("other")},
		{"infinity uses label", math.Inf(1), "2020-01", Numeric(202001)},
		{"unsupported type uses label", struct{}{}, "Z", Text("z")},
		{"stringer", time.March, "", Text("march")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, tt.label); got != tt.want {
				t.Errorf("Normalize(%v, %q) = %v, want %v", tt.raw, tt.label, got, tt.want)
			}
		})
	}
}

func TestNormalizeEquivalentMonthForms(t *testing.T) {
	a := Normalize("Mar 2023", "")
	b := Normalize("2023-03", "")
	if a != b || a.Num != 202303 {
		t.Errorf("Normalize(Mar 2023) = %v, Normalize(2023-03) = %v, want both 202303", a, b)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Key
		want   int
		wantOK bool
	}{
		{"numeric less", Numeric(1), Numeric(2), -1, true},
		{"numeric equal", Numeric(2), Numeric(2), 0, true},
		{"text greater", Text("b"), Text("a"), 1, true},
		{"mismatch", Numeric(1), Text("a"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Compare(%v, %v) = %d, %v, want %d, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindNumeric.String() != "numeric" || KindText.String() != "text" {
		t.Errorf("Kind.String() = %q, %q", KindNumeric, KindText)
	}
}

type nilStringer struct{ name string }

func (n *nilStringer) String() string { return n.name }

func TestNormalizeNilStringerFallsBack(t *testing.T) {
	var s *nilStringer
	if got := Normalize(s, "Fallback"); got != Text("fallback") {
		t.Errorf("Normalize(nil stringer) = %v, want %v", got, Text("fallback"))
	}
}
