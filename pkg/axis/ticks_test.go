package axis

import (
	"strings"
	"testing"
)

func TestBuildTicksTruncatesToSpace(t *testing.T) {
	m := headless()
	req := Request{
		Mode:           ModeNever,
		Labels:         []string{"Supercalifragilistic", "Supercalifragilistic"},
		AvailableWidth: 100,
		FontSize:       10,
	}

	d, ticks := BuildTicks(m, req, nil)
	if d.Rotate || d.SkipInterval != 2 {
		t.Fatalf("decision = %+v, want horizontal skip 2", d)
	}
	if len(ticks) != 2 {
		t.Fatalf("len(ticks) = %d, want 2 (first and last)", len(ticks))
	}

	// 46px per label: four characters plus the ellipsis.
	for i, tick := range ticks {
		if tick.Text != "Supe..." {
			t.Errorf("tick %d text = %q, want Supe...", i, tick.Text)
		}
	}
	if ticks[0].Pos != 25 || ticks[1].Pos != 75 {
		t.Errorf("positions = %v, %v, want band centers 25, 75", ticks[0].Pos, ticks[1].Pos)
	}
}

func TestBuildTicksRotated(t *testing.T) {
	m := headless()
	labels := repeatLabels(5, strings.Repeat("x", 10))
	positions := []float64{10, 20, 30, 40, 50}

	d, ticks := BuildTicks(m, Request{Labels: labels, AvailableWidth: 280, FontSize: 10}, positions)
	if !d.Rotate {
		t.Fatalf("decision = %+v, want rotation", d)
	}
	for i, tick := range ticks {
		if !tick.Rotated || tick.Index != i || tick.Pos != positions[i] {
			t.Errorf("tick %d = %+v", i, tick)
		}
		// Rotated labels get 2.5x the space and are not cut here.
		if tick.Text != labels[i] {
			t.Errorf("tick %d text = %q, want untruncated", i, tick.Text)
		}
	}
}

func TestBuildTicksEmpty(t *testing.T) {
	d, ticks := BuildTicks(headless(), Request{AvailableWidth: 100, FontSize: 10}, nil)
	if ticks != nil || d.SkipInterval != 1 {
		t.Errorf("BuildTicks(no labels) = %+v, %v", d, ticks)
	}
}

func TestBandCenters(t *testing.T) {
	got := BandCenters(4, 200)
	want := []float64{25, 75, 125, 175}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BandCenters()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if BandCenters(0, 100) != nil {
		t.Error("BandCenters(0) should be nil")
	}
}
