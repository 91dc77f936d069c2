package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/legend"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/settings"
	"github.com/matzehuels/chartkit/pkg/source"
	"github.com/matzehuels/chartkit/pkg/textmeasure"
)

func salesTable() *source.Table {
	return source.FromRecords(
		[]string{"Region", "City", "Channel", "2024|Q1", "2024|Q2", "2025|Q1", "2025|Total"},
		[][]string{
			{"East", "Boston", "Online", "1", "2", "3", "6"},
			{"", "NYC", "Retail", "4", "5", "6", "15"},
			{"West", "Denver", "Online", "7", "8", "9", "24"},
			{"Total", "", "", "12", "15", "18", "45"},
		},
	)
}

func salesSettings() *settings.Settings {
	return &settings.Settings{
		Canvas: settings.Canvas{Width: 400, Height: 300},
		Table:  settings.Table{RowDimensions: 2, GroupColumn: "Channel"},
	}
}

func newTestRunner() *Runner {
	return NewRunner(textmeasure.New(textmeasure.WithoutSurface()), nil)
}

func TestRun(t *testing.T) {
	frame, err := newTestRunner().Run(context.Background(), salesTable(), salesSettings())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if frame.Columns.LeafCount() != 3 || frame.Columns.Depth != 2 {
		t.Errorf("Columns = %d leaves, depth %d, want 3, 2", frame.Columns.LeafCount(), frame.Columns.Depth)
	}
	if len(frame.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(frame.Rows))
	}

	if frame.Legend == nil {
		t.Fatal("Legend = nil, want ordinal legend")
	}
	if frame.Legend.Kind != "ordinal" || len(frame.Legend.Labels) != 2 {
		t.Errorf("Legend = %+v, want ordinal with 2 labels", frame.Legend)
	}
	// Two 71.2px items fit in one row on a top dock.
	if frame.Legend.Reservation.Margin != (legend.Margin{Top: 18}) {
		t.Errorf("Reservation.Margin = %+v, want top 18", frame.Legend.Reservation.Margin)
	}
	if want := (legend.Rect{X: 12, Y: 30, W: 376, H: 258}); frame.Plot != want {
		t.Errorf("Plot = %+v, want %+v", frame.Plot, want)
	}
	if len(frame.Legend.Placement.Items) != 2 {
		t.Errorf("Placement.Items = %+v", frame.Legend.Placement.Items)
	}

	if frame.Axis.Decision.Rotate || frame.Axis.Decision.SkipInterval != 1 {
		t.Errorf("Axis.Decision = %+v, want horizontal skip 1", frame.Axis.Decision)
	}
	if len(frame.Axis.Ticks) != 3 {
		t.Fatalf("len(Ticks) = %d, want 3", len(frame.Axis.Ticks))
	}
	band := 376.0 / 3
	for i, tick := range frame.Axis.Ticks {
		want := 12 + band*(float64(i)+0.5)
		if math.Abs(tick.Pos-want) > 1e-9 {
			t.Errorf("Ticks[%d].Pos = %v, want %v", i, tick.Pos, want)
		}
	}
	if frame.Stats.Records != 4 || frame.Stats.VisibleTicks != 3 || frame.Stats.Panels != 2 {
		t.Errorf("Stats = %+v", frame.Stats)
	}
}

func TestRunGradientLegend(t *testing.T) {
	s := salesSettings()
	s.Table.GroupColumn = ""

	frame, err := newTestRunner().Run(context.Background(), salesTable(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if frame.Legend == nil || frame.Legend.Kind != "gradient" {
		t.Fatalf("Legend = %+v, want gradient", frame.Legend)
	}
	g := frame.Legend.Placement.Gradient
	if g == nil || g.MinLabel != "1" || g.MaxLabel != "9" {
		t.Errorf("Gradient = %+v, want range 1..9", g)
	}
}

func TestRunHiddenLegend(t *testing.T) {
	s := salesSettings()
	s.Legend.Hidden = true

	frame, err := newTestRunner().Run(context.Background(), salesTable(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if frame.Legend != nil {
		t.Errorf("Legend = %+v, want nil", frame.Legend)
	}
	if want := (legend.Rect{X: 12, Y: 12, W: 376, H: 276}); frame.Plot != want {
		t.Errorf("Plot = %+v, want %+v", frame.Plot, want)
	}
}

func TestRunErrors(t *testing.T) {
	r := newTestRunner()
	ctx := context.Background()

	bad := salesSettings()
	bad.Axis.Rotation = "sideways"
	if _, err := r.Run(ctx, salesTable(), bad); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("Run(bad settings) error = %v, want %v", err, errors.ErrCodeInvalidSettings)
	}

	missing := salesSettings()
	missing.Table.GroupColumn = "Segment"
	if _, err := r.Run(ctx, salesTable(), missing); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Run(missing group) error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}

	if _, err := r.Run(ctx, nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Run(nil table) error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Run(cancelled, salesTable(), salesSettings()); err != context.Canceled {
		t.Errorf("Run(cancelled) error = %v, want %v", err, context.Canceled)
	}
}

func TestRunDefaultSettings(t *testing.T) {
	frame, err := newTestRunner().Run(context.Background(), salesTable(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if frame.Canvas != (legend.Size{W: settings.DefaultWidth, H: settings.DefaultHeight}) {
		t.Errorf("Canvas = %+v", frame.Canvas)
	}
	// One row dimension: City and Channel become measure columns too.
	if frame.Columns.LeafCount() != 5 {
		t.Errorf("Columns.LeafCount() = %d, want 5", frame.Columns.LeafCount())
	}
}

func TestRunDeterministic(t *testing.T) {
	r := newTestRunner()
	a, err := r.Run(context.Background(), salesTable(), salesSettings())
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Run(context.Background(), salesTable(), salesSettings())
	if err != nil {
		t.Fatal(err)
	}
	if a.Axis.Decision != b.Axis.Decision || len(a.Axis.Ticks) != len(b.Axis.Ticks) || a.Plot != b.Plot {
		t.Errorf("runs differ: %+v vs %+v", a.Axis, b.Axis)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	started   []string
	completed []string
}

func (h *recordingHooks) OnStageStart(_ context.Context, stage string, _ int) {
	h.started = append(h.started, stage)
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	h.completed = append(h.completed, stage)
}

func TestRunReportsStages(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	if _, err := newTestRunner().Run(context.Background(), salesTable(), salesSettings()); err != nil {
		t.Fatal(err)
	}
	want := []string{StageHierarchy, StageLegend, StageAxis}
	for i, stage := range want {
		if i >= len(hooks.started) || i >= len(hooks.completed) || hooks.started[i] != stage || hooks.completed[i] != stage {
			t.Fatalf("stages = %v / %v, want %v", hooks.started, hooks.completed, want)
		}
	}
}

func TestFrameWriteJSON(t *testing.T) {
	frame, err := newTestRunner().Run(context.Background(), salesTable(), salesSettings())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := frame.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"columns", "rows", "axis", "legend", "plot", "stats"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing %q", key)
		}
	}
}
