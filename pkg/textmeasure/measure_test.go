package textmeasure

import (
	"math"
	"strings"
	"testing"
)

func TestMeasureWidthHeadless(t *testing.T) {
	m := New(WithoutSurface())

	tests := []struct {
		name     string
		text     string
		fontSize float64
		want     float64
	}{
		{"empty", "", 12, 0},
		{"ascii", "abcd", 10, 24},
		{"multi-line takes widest line", "ab\nabcde\nabc", 10, 30},
		{"wide runes count double", "日本", 10, 24},
		{"zero font size", "abc", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MeasureWidth(tt.text, tt.fontSize, "")
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MeasureWidth(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMeasureWidthSurface(t *testing.T) {
	m := New()
	if m.Headless() {
		t.Skip("no measurement surface")
	}

	narrow := m.MeasureWidth("iiii", 12, "")
	wide := m.MeasureWidth("WWWW", 12, "")
	if narrow <= 0 || wide <= narrow {
		t.Errorf("MeasureWidth: iiii=%v WWWW=%v, want 0 < iiii < WWWW", narrow, wide)
	}

	small := m.MeasureWidth("Revenue", 10, "")
	large := m.MeasureWidth("Revenue", 20, "")
	if large <= small {
		t.Errorf("MeasureWidth at 20px = %v, want more than at 10px (%v)", large, small)
	}

	mono := m.MeasureWidth("iiii", 12, "Consolas")
	if mono <= narrow {
		t.Errorf("monospace iiii = %v, want wider than proportional %v", mono, narrow)
	}
}

func TestMeasureWidthMemoizes(t *testing.T) {
	m := New(WithoutSurface())

	m.MeasureWidth("Quarter", 12, "Segoe UI")
	m.MeasureWidth("Quarter", 12, "Segoe UI")
	if got := m.CacheLen(); got != 1 {
		t.Errorf("CacheLen() = %d, want 1", got)
	}

	// Size and family are part of the key
	m.MeasureWidth("Quarter", 14, "Segoe UI")
	m.MeasureWidth("Quarter", 12, "Arial")
	if got := m.CacheLen(); got != 3 {
		t.Errorf("CacheLen() = %d, want 3", got)
	}

	m.Clear()
	if got := m.CacheLen(); got != 0 {
		t.Errorf("CacheLen() after Clear = %d, want 0", got)
	}
}

func TestMeasureWidthCacheBound(t *testing.T) {
	m := New(WithoutSurface(), WithCacheSize(4))
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		m.MeasureWidth(s, 12, "")
	}
	if got := m.CacheLen(); got != 4 {
		t.Errorf("CacheLen() = %d, want 4", got)
	}

	disabled := New(WithoutSurface(), WithCacheSize(0))
	disabled.MeasureWidth("a", 12, "")
	if got := disabled.CacheLen(); got != 0 {
		t.Errorf("CacheLen() with caching disabled = %d, want 0", got)
	}
}

func TestMeasureMax(t *testing.T) {
	m := New(WithoutSurface())

	if got := m.MeasureMax(nil, 12, ""); got != 0 {
		t.Errorf("MeasureMax(nil) = %v, want 0", got)
	}

	got := m.MeasureMax([]string{"Jan", "February", "Mar"}, 10, "")
	if want := 48.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("MeasureMax() = %v, want %v", got, want)
	}
}

func TestInstancesDoNotShareCache(t *testing.T) {
	a := New(WithoutSurface())
	b := New(WithoutSurface())

	a.MeasureWidth("Region", 12, "")
	if got := b.CacheLen(); got != 0 {
		t.Errorf("second measurer CacheLen() = %d, want 0", got)
	}
}

func TestWithFamily(t *testing.T) {
	m := New(WithoutSurface(), WithFamily("Consolas"))
	if got := m.Family(); got != "Consolas" {
		t.Errorf("Family() = %q, want Consolas", got)
	}
	if !strings.EqualFold(New().Family(), "Segoe UI") {
		t.Errorf("default Family() = %q, want Segoe UI", New().Family())
	}
}
