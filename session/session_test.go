package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/recording"
	"github.com/gogpu/embroider/stitch"
)

func newSession(t *testing.T, opts ...Option) (*Session, *recording.Recorder, *recording.Recorder) {
	t.Helper()
	target := recording.NewRecorder(100, 100)
	overlay := recording.NewRecorder(100, 100)
	s, err := New(stitch.NewRegistry(), target, overlay, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, target, overlay
}

func TestNewWithoutRegistry(t *testing.T) {
	if _, err := New(nil, nil, nil); !errors.Is(err, ErrNoRegistry) {
		t.Errorf("err = %v, want ErrNoRegistry", err)
	}
}

func TestStateMachine(t *testing.T) {
	tests := []struct {
		name     string
		realtime bool
		want     State
	}{
		{"preview on", true, Previewing},
		{"preview off", false, Drawing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newSession(t, WithRealtimePreview(tt.realtime))
			if s.State() != Idle {
				t.Fatalf("initial state = %v", s.State())
			}
			s.AddPoint(embroider.Pt(1, 1))
			if s.State() != tt.want {
				t.Errorf("after AddPoint state = %v, want %v", s.State(), tt.want)
			}
			s.CompletePath()
			if s.State() != Idle {
				t.Errorf("after CompletePath state = %v, want idle", s.State())
			}
		})
	}
}

func TestPreviewDoesNotCommit(t *testing.T) {
	s, target, overlay := newSession(t, WithConfig(stitch.Config{Type: "satin", Color: "#ff0000", Thickness: 2, Opacity: 1}))
	s.AddPoint(embroider.Pt(0, 0))
	s.AddPoint(embroider.Pt(50, 50))

	if target.Drew() {
		t.Error("preview drew on the target")
	}
	strokes := overlay.Filter(recording.CmdStroke)
	if len(strokes) == 0 {
		t.Fatal("no preview stroke on the overlay")
	}
	if a := strokes[len(strokes)-1].(recording.StrokeCommand).Alpha; a != PreviewOpacity {
		t.Errorf("preview alpha = %v, want %v", a, PreviewOpacity)
	}
	if got := overlay.Count(recording.CmdClearRect); got != 2 {
		t.Errorf("overlay cleared %d times, want once per point", got)
	}
}

func TestCompletePath(t *testing.T) {
	s, target, _ := newSession(t, WithConfig(stitch.Config{Type: "cross-stitch", Color: "#00aa00", Thickness: 3}))
	s.AddPoint(embroider.Pt(10, 10))
	s.AddPoint(embroider.Pt(30, 10))
	st, ok := s.CompletePath()
	if !ok {
		t.Fatal("CompletePath returned false")
	}
	if st.Type != stitch.TypeCrossStitch || len(st.Points) != 2 || st.ID == "" {
		t.Errorf("stitch = %+v", st)
	}
	if got := target.Count(recording.CmdMoveTo); got != 6*5 {
		t.Errorf("target MoveTo = %d, want 30", got)
	}
	if s.Path().Len() != 0 {
		t.Error("path not reset after completion")
	}
	if got := s.Stitches(); len(got) != 1 || got[0].ID != st.ID {
		t.Errorf("Stitches() = %v", got)
	}
}

func TestCompleteEmptyPath(t *testing.T) {
	s, target, _ := newSession(t)
	if _, ok := s.CompletePath(); ok {
		t.Error("empty CompletePath returned true")
	}
	if len(target.Commands()) != 0 || len(s.Stitches()) != 0 {
		t.Error("empty completion had side effects")
	}
}

// A two-point fill converts to a fill stitch but draws nothing.
func TestTwoPointFill(t *testing.T) {
	s, target, _ := newSession(t, WithConfig(stitch.Config{Type: "fill", Color: "#0000ff"}))
	s.AddPoint(embroider.Pt(0, 0))
	s.AddPoint(embroider.Pt(10, 0))
	st, _ := s.CompletePath()
	if st.Type != stitch.TypeFill || len(st.Points) != 2 {
		t.Errorf("stitch type=%q points=%d", st.Type, len(st.Points))
	}
	if got := target.Count(recording.CmdFill); got != 0 {
		t.Errorf("Fill calls = %d, want 0", got)
	}
}

func TestExitVectorMode(t *testing.T) {
	s, _, overlay := newSession(t)
	s.AddPoint(embroider.Pt(5, 5))
	s.AddPoint(embroider.Pt(25, 25))
	overlay.Reset()

	s.ExitVectorMode()
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if len(s.Stitches()) != 1 {
		t.Errorf("open path not completed: %d stitches", len(s.Stitches()))
	}
	clears := overlay.Filter(recording.CmdClearRect)
	if len(clears) == 0 {
		t.Fatal("overlay not cleared")
	}
	c := clears[len(clears)-1].(recording.ClearRectCommand)
	if c.X != 0 || c.Y != 0 || c.W != 100 || c.H != 100 {
		t.Errorf("last clear = %+v, want full overlay", c)
	}
}

func TestRerenderAll(t *testing.T) {
	s, target, _ := newSession(t, WithRealtimePreview(false))
	for i := range 3 {
		y := float64(10 + i*10)
		s.AddPoint(embroider.Pt(0, y))
		s.AddPoint(embroider.Pt(50, y))
		s.CompletePath()
	}
	target.Reset()
	if n := s.RerenderAll(); n != 3 {
		t.Errorf("RerenderAll = %d, want 3", n)
	}
	if target.Count(recording.CmdClearRect) != 1 || target.Count(recording.CmdStroke) != 3 {
		t.Errorf("rerender commands: clears=%d strokes=%d",
			target.Count(recording.CmdClearRect), target.Count(recording.CmdStroke))
	}
}

func TestEvents(t *testing.T) {
	s, _, _ := newSession(t)
	var got []EventType
	s.Subscribe(func(e Event) { got = append(got, e.Type) })
	s.AddPoint(embroider.Pt(0, 0))
	s.AddPoint(embroider.Pt(9, 9))
	s.ExitVectorMode()

	want := []EventType{
		EventStateChanged, EventPointAdded,
		EventPointAdded,
		EventPathCompleted, EventStateChanged, EventModeExited,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPreviewOnCanvas(t *testing.T) {
	overlay := embroider.MustNewCanvas(40, 40)
	target := embroider.MustNewCanvas(40, 40)
	s, err := New(stitch.NewRegistry(), target, overlay,
		WithConfig(stitch.Config{Type: "satin", Color: "#000000", Thickness: 6, Opacity: 1}))
	if err != nil {
		t.Fatal(err)
	}
	s.AddPoint(embroider.Pt(5, 20))
	s.AddPoint(embroider.Pt(35, 20))
	if a := overlay.Pixmap().GetPixel(20, 20).A; a < 0.45 || a > 0.55 {
		t.Errorf("preview alpha = %v, want ~0.5", a)
	}
	s.CompletePath()
	if a := target.Pixmap().GetPixel(20, 20).A; a != 1 {
		t.Errorf("committed alpha = %v, want 1", a)
	}
	if a := overlay.Pixmap().GetPixel(20, 20).A; a != 0 {
		t.Errorf("overlay not cleared: alpha %v", a)
	}
}

func TestPreviewLoop(t *testing.T) {
	s, _, overlay := newSession(t, WithRealtimePreview(false))
	s.AddPoint(embroider.Pt(0, 0))
	s.AddPoint(embroider.Pt(10, 10))

	loop := NewPreviewLoop(s)
	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background(), ticks) }()

	ticks <- time.Now()
	ticks <- time.Now()
	if !loop.IsActive() {
		t.Error("loop inactive while running")
	}
	loop.Stop()
	ticks <- time.Now()
	if err := <-done; err != nil {
		t.Errorf("Run = %v", err)
	}
	if loop.IsActive() {
		t.Error("loop active after Stop")
	}
	if loop.Frames() != 2 {
		t.Errorf("frames = %d, want 2", loop.Frames())
	}
	if overlay.Count(recording.CmdClearRect) != 2 {
		t.Errorf("overlay clears = %d, want 2", overlay.Count(recording.CmdClearRect))
	}
}

func TestPreviewLoopCancel(t *testing.T) {
	s, _, _ := newSession(t)
	loop := NewPreviewLoop(s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Run(ctx, make(chan time.Time)); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestPreviewLoopStopBeforeRun(t *testing.T) {
	s, _, overlay := newSession(t, WithRealtimePreview(false))
	s.AddPoint(embroider.Pt(0, 0))
	s.AddPoint(embroider.Pt(10, 10))

	loop := NewPreviewLoop(s)
	loop.Stop()
	ticks := make(chan time.Time, 2)
	ticks <- time.Now()
	ticks <- time.Now()
	if err := loop.Run(context.Background(), ticks); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if loop.Frames() != 0 || overlay.Count(recording.CmdClearRect) != 0 {
		t.Errorf("stopped loop drew %d frames", loop.Frames())
	}

	// the pending stop is consumed: the next run draws until ticks closes
	close(ticks)
	if err := loop.Run(context.Background(), ticks); err != nil {
		t.Fatalf("second Run = %v", err)
	}
	if loop.Frames() != 2 {
		t.Errorf("frames = %d, want 2", loop.Frames())
	}
}
