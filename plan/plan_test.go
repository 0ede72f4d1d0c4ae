package plan

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/stitch"
)

func line(x0, y0, x1, y1 float64) []embroider.Point {
	return []embroider.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestResample(t *testing.T) {
	tests := []struct {
		name    string
		pts     []embroider.Point
		spacing float64
		wantLen int
	}{
		{"exact multiple", line(0, 0, 10, 0), 2, 6},
		{"remainder adds end", line(0, 0, 10, 0), 3, 5},
		{"single point", []embroider.Point{{X: 1, Y: 1}}, 2, 1},
		{"carry across corner", []embroider.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resample(tt.pts, tt.spacing)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d (%v), want %d", len(got), got, tt.wantLen)
			}
			if got[len(got)-1] != tt.pts[len(tt.pts)-1] {
				t.Errorf("last = %v, want %v", got[len(got)-1], tt.pts[len(tt.pts)-1])
			}
		})
	}
}

// Samples keep their spacing when a segment boundary falls between them.
func TestResampleCarry(t *testing.T) {
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}
	got := Resample(pts, 2)
	want := []embroider.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 3}}
	for i := range want {
		if !near(got[i].X, want[i].X) || !near(got[i].Y, want[i].Y) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTangent(t *testing.T) {
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	tests := []struct {
		i    int
		want embroider.Point
	}{
		{0, embroider.Pt(1, 0)},
		{2, embroider.Pt(0, 1)},
		{1, embroider.Pt(math.Sqrt2/2, math.Sqrt2/2)},
	}
	for _, tt := range tests {
		got := Tangent(pts, tt.i)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("Tangent(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestGenerateTooFewPoints(t *testing.T) {
	p := Generate([]embroider.Point{{X: 1, Y: 1}}, Options{})
	if len(p.Points) != 0 || p.Info.StitchCount != 0 {
		t.Errorf("plan = %+v", p)
	}
}

func TestTangentDegenerate(t *testing.T) {
	for _, pts := range [][]embroider.Point{nil, {{X: 3, Y: 4}}} {
		if got := Tangent(pts, 0); got != (embroider.Point{}) {
			t.Errorf("Tangent(%v, 0) = %v, want zero", pts, got)
		}
	}
}

func TestGenerateCoincidentPoints(t *testing.T) {
	tap := []embroider.Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	for _, s := range []Strategy{Outline, Satin, Zigzag, DoubleSatin, Meander, Contour, Ripple, Fill} {
		t.Run(string(s), func(t *testing.T) {
			p := Generate(tap, Options{Strategy: s})
			if len(p.Points) != 2 || p.Info.StitchCount != 1 {
				t.Fatalf("plan = %+v", p.Points)
			}
			if p.Points[0].Kind != KindColorChange || p.Points[1].Pos() != embroider.Pt(5, 5) {
				t.Errorf("points = %+v", p.Points)
			}
		})
	}
	st := stitch.New("tap", tap[:2], stitch.Config{Type: stitch.TypeSatin, Thickness: 3})
	if p := FromStitch(st, Options{}); p.Info.StitchCount != 1 {
		t.Errorf("FromStitch stitches = %d, want 1", p.Info.StitchCount)
	}
}

func TestGenerateStrategies(t *testing.T) {
	// 26px line at 1mm/px with 2mm stitches: base has 14 points.
	pts := line(0, 0, 26, 0)
	base := Options{MMPerPx: 1, StitchLenMM: 2, WidthMM: 4}
	tests := []struct {
		strategy Strategy
		passes   int
		want     int
	}{
		{Outline, 1, 14},
		{Satin, 1, 14},
		{Satin, 3, 42},
		{Zigzag, 1, 14},
		{DoubleSatin, 1, 28},
		{Meander, 1, 14},
		{Contour, 1, 14 * 3}, // bands=2: offsets -2, 0, 2
		{Ripple, 1, 14},
		{Fill, 1, 14 * 5}, // bands=2: offsets -2..2
		{"unknown", 1, 14 * 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			o := base
			o.Strategy, o.Passes = tt.strategy, tt.passes
			p := Generate(pts, o)
			if p.Info.StitchCount != tt.want {
				t.Errorf("stitches = %d, want %d", p.Info.StitchCount, tt.want)
			}
			if first := p.Points[0]; first.Kind != KindColorChange || first.Color != "#000000" {
				t.Errorf("first point = %+v, want color change", first)
			}
		})
	}
}

func TestSatinOffsets(t *testing.T) {
	p := Generate(line(0, 0, 10, 0), Options{Strategy: Satin, MMPerPx: 1, StitchLenMM: 5, WidthMM: 4, Passes: 2})
	// left normal of +x in y-down space is (0, 1)
	want := []float64{2, 1, -2, -1, 2, 1}
	got := p.Points[1:]
	if len(got) != len(want) {
		t.Fatalf("points = %d, want %d", len(got), len(want))
	}
	for i, y := range want {
		if !near(got[i].Y, y) {
			t.Errorf("stitch %d y = %v, want %v", i, got[i].Y, y)
		}
	}
}

func TestDensityShortensStitches(t *testing.T) {
	sparse := Options{MMPerPx: 1, StitchLenMM: 4, Density: 1}
	dense := Options{MMPerPx: 1, StitchLenMM: 4, Density: 2}
	floor := Options{MMPerPx: 1, StitchLenMM: 4, Density: 0.1}
	if sparse.StitchLenPx() != 4 || dense.StitchLenPx() != 2 || floor.StitchLenPx() != 16 {
		t.Errorf("StitchLenPx = %v %v %v", sparse.StitchLenPx(), dense.StitchLenPx(), floor.StitchLenPx())
	}
}

func TestSummarize(t *testing.T) {
	p := Generate(line(0, 0, 10, 0), Options{MMPerPx: 1, StitchLenMM: 2})
	p.Append(Point{X: 20, Y: 0, Kind: KindJump})
	s := Summarize(p)
	if s.Stitches != 6 || s.Jumps != 1 || s.ColorChanges != 1 {
		t.Errorf("counts = %+v", s)
	}
	if !near(s.TotalLength, 10) || !near(s.MeanLength, 2) || !near(s.MaxLength, 2) || !near(s.StdDevLength, 0) {
		t.Errorf("lengths = total %v mean %v max %v sd %v", s.TotalLength, s.MeanLength, s.MaxLength, s.StdDevLength)
	}
	if s.MinX != 0 || s.MaxX != 20 {
		t.Errorf("x range = %v..%v", s.MinX, s.MaxX)
	}
	if (Summarize(Plan{}) != Summary{}) {
		t.Error("empty plan summary not zero")
	}
}

func TestFromStitch(t *testing.T) {
	s := stitch.New("s1", line(0, 0, 52, 0), stitch.Config{Type: "satin", Color: "#ff0000", Thickness: 8})
	p := FromStitch(s, Options{MMPerPx: 0.5, StitchLenMM: 1})
	if p.Info.Strategy != Satin || p.Info.Name != "s1" {
		t.Errorf("info = %+v", p.Info)
	}
	if !near(p.Info.WidthMM, 4) {
		t.Errorf("width = %v mm, want 4", p.Info.WidthMM)
	}
	if p.Points[0].Color != "#ff0000" {
		t.Errorf("color = %q", p.Points[0].Color)
	}
	if StrategyFor("French Knot") != Outline || StrategyFor("Long Short") != Fill {
		t.Error("StrategyFor mapping")
	}
}

func TestPlanJSON(t *testing.T) {
	p := Generate(line(0, 0, 4, 0), Options{MMPerPx: 1, StitchLenMM: 2})
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var back Plan
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Points[0].Kind != KindColorChange || back.Info.StitchCount != p.Info.StitchCount {
		t.Errorf("round trip = %+v", back)
	}
}

func TestConcat(t *testing.T) {
	a := Generate(line(0, 0, 4, 0), Options{MMPerPx: 1, StitchLenMM: 2})
	b := Generate(line(0, 5, 4, 5), Options{MMPerPx: 1, StitchLenMM: 2, Color: "#ffffff"})
	c := Concat(a, b)
	if c.Info.StitchCount != a.Info.StitchCount+b.Info.StitchCount {
		t.Errorf("stitches = %d", c.Info.StitchCount)
	}
	if s := Summarize(c); s.ColorChanges != 2 {
		t.Errorf("color changes = %d", s.ColorChanges)
	}
}
