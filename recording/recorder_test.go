package recording

import (
	"testing"

	"github.com/gogpu/embroider"
)

func TestNewRecorder(t *testing.T) {
	rec := NewRecorder(800, 600)
	if rec.Width() != 800 || rec.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", rec.Width(), rec.Height())
	}
	if len(rec.Commands()) != 0 {
		t.Error("new recorder should have no commands")
	}
	if rec.Drew() {
		t.Error("new recorder should not report drawing")
	}
}

func TestRecorderCountAndFilter(t *testing.T) {
	rec := NewRecorder(100, 100)
	rec.BeginPath()
	rec.MoveTo(0, 0)
	rec.LineTo(10, 10)
	rec.MoveTo(10, 0)
	rec.LineTo(0, 10)
	rec.Stroke()

	if got := rec.Count(CmdMoveTo); got != 2 {
		t.Errorf("Count(MoveTo) = %d, want 2", got)
	}
	if got := rec.Count(CmdFill); got != 0 {
		t.Errorf("Count(Fill) = %d, want 0", got)
	}
	lines := rec.Filter(CmdLineTo)
	if len(lines) != 2 {
		t.Fatalf("Filter(LineTo) len = %d", len(lines))
	}
	if lt := lines[1].(LineToCommand); lt.X != 0 || lt.Y != 10 {
		t.Errorf("second LineTo = %+v", lt)
	}
	if !rec.Drew() {
		t.Error("Drew() = false after Stroke")
	}
}

func TestRecorderStrokeSnapshotsState(t *testing.T) {
	rec := NewRecorder(100, 100)
	red := embroider.Solid{Color: embroider.Red}

	rec.Save()
	rec.SetGlobalAlpha(0.5)
	rec.SetStrokeStyle(red)
	rec.SetLineWidth(3)
	rec.Stroke()
	rec.Restore()
	rec.Stroke()

	strokes := rec.Filter(CmdStroke)
	first := strokes[0].(StrokeCommand)
	if first.Alpha != 0.5 || first.LineWidth != 3 || first.Paint != red {
		t.Errorf("first stroke = %+v", first)
	}
	second := strokes[1].(StrokeCommand)
	if second.Alpha != 1 || second.LineWidth != 1 {
		t.Errorf("stroke after Restore = %+v", second)
	}
}

func TestRecordingPlayback(t *testing.T) {
	rec := NewRecorder(20, 20)
	rec.SetFillStyle(embroider.Solid{Color: embroider.Blue})
	rec.FillRect(5, 5, 10, 10)

	r := rec.FinishRecording()
	rec.Reset()
	if len(rec.Commands()) != 0 {
		t.Error("Reset should drop commands")
	}
	if len(r.Commands()) != 2 {
		t.Fatalf("recording has %d commands, want 2", len(r.Commands()))
	}

	c, err := embroider.NewCanvas(r.Width(), r.Height())
	if err != nil {
		t.Fatal(err)
	}
	r.Playback(c)
	if got := c.Pixmap().GetPixel(10, 10); got != embroider.Blue {
		t.Errorf("played-back pixel = %v, want blue", got)
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdMoveTo, "MoveTo"},
		{CmdDrawImage, "DrawImage"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
	if CmdMoveTo.IsDrawing() || !CmdFill.IsDrawing() {
		t.Error("IsDrawing misclassifies commands")
	}
}
