package stitch

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/recording"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cross-stitch", "cross-stitch"},
		{"Cross Stitch", "cross-stitch"},
		{"CROSS_STITCH", "cross-stitch"},
		{"  french  knot ", "french-knot"},
		{"Appliqué", "applique"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeType(tt.in); got != tt.want {
				t.Errorf("NormalizeType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegistryBuiltins(t *testing.T) {
	reg := NewRegistry()
	types := reg.Types()
	if len(types) != 25 {
		t.Fatalf("built-in renderers = %d, want 25", len(types))
	}
	sorted := slices.Clone(types)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != 25 {
		t.Errorf("duplicate renderer ids in %v", types)
	}
	for _, id := range types {
		rd, ok := reg.Lookup(id)
		if !ok || rd.ID() != id || rd.Name() == "" {
			t.Errorf("Lookup(%q) = %v, %v", id, rd, ok)
		}
		if def := rd.DefaultConfig(); rd.ValidateConfig(def) != nil {
			t.Errorf("%s: default config invalid: %v", id, rd.ValidateConfig(def))
		}
	}
}

func TestFindRenderer(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name string
		tool string
		cfg  Config
		want string
	}{
		{"exact tool", "cross-stitch", Config{}, TypeCrossStitch},
		{"config type", "pen", Config{Type: "chain"}, TypeChain},
		{"loose tool name", "French Knot", Config{}, TypeFrenchKnot},
		{"unknown falls back", "unknown-tool", Config{Type: "unknown"}, TypeSatin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := reg.FindRenderer(tt.tool, tt.cfg)
			if rd == nil || rd.ID() != tt.want {
				t.Errorf("FindRenderer(%q) = %v, want %s", tt.tool, rd, tt.want)
			}
		})
	}
}

func TestFindRendererNoFallback(t *testing.T) {
	reg := NewRegistry()
	if !reg.Unregister(TypeSatin) {
		t.Fatal("Unregister(satin) = false")
	}
	if reg.Unregister(TypeSatin) {
		t.Error("second Unregister(satin) = true")
	}
	if rd := reg.FindRenderer("nope", Config{}); rd != nil {
		t.Errorf("FindRenderer = %s, want nil", rd.ID())
	}
	rec := recording.NewRecorder(10, 10)
	if reg.Render(rec, []embroider.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, "nope", Config{}, RenderOptions{}) {
		t.Error("Render without renderer returned true")
	}
	if len(rec.Commands()) != 0 {
		t.Errorf("recorded %d commands", len(rec.Commands()))
	}
}

func TestRegistryOptions(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins(), WithRenderer(Fill{newBase(TypeFill, "Fill", 1)}), WithFallback("Fill"))
	if got := reg.Types(); len(got) != 1 || got[0] != TypeFill {
		t.Fatalf("Types() = %v", got)
	}
	if rd := reg.FindRenderer("anything", Config{}); rd == nil || rd.ID() != TypeFill {
		t.Errorf("fallback = %v, want fill", rd)
	}
}

func TestCrossStitchCount(t *testing.T) {
	tests := []struct {
		d, thickness float64
	}{
		{20, 3},
		{20, 10},
		{7, 1},
		{100, 5},
	}
	reg := NewRegistry()
	for _, tt := range tests {
		rec := recording.NewRecorder(200, 200)
		pts := []embroider.Point{{X: 10, Y: 10}, {X: 10 + tt.d, Y: 10}}
		ok := reg.Render(rec, pts, TypeCrossStitch, Config{Color: "#336699", Thickness: tt.thickness}, RenderOptions{})
		if !ok {
			t.Fatalf("Render returned false")
		}
		stitches := int(math.Ceil(tt.d / math.Max(4, tt.thickness*1.2)))
		if got := rec.Count(recording.CmdMoveTo); got != 6*stitches {
			t.Errorf("d=%v thickness=%v: MoveTo = %d, want %d", tt.d, tt.thickness, got, 6*stitches)
		}
		if got := rec.Count(recording.CmdStroke); got != 3*stitches {
			t.Errorf("d=%v thickness=%v: Stroke = %d, want %d", tt.d, tt.thickness, got, 3*stitches)
		}
	}
}

func TestCrossStitchDeterministic(t *testing.T) {
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 40, Y: 0}}
	cfg := Config{Color: "#808080", Thickness: 3, Opacity: 1}
	render := func() []recording.Command {
		rec := recording.NewRecorder(50, 50)
		NewRegistry().Render(rec, pts, TypeCrossStitch, cfg, RenderOptions{})
		return rec.Filter(recording.CmdSetStrokeStyle)
	}
	a, b := render(), render()
	if len(a) != len(b) {
		t.Fatalf("style count differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("style %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFillNeedsThreePoints(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name  string
		pts   []embroider.Point
		fills int
	}{
		{"none", nil, 0},
		{"two", []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 0},
		{"triangle", []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.NewRecorder(20, 20)
			if !reg.Render(rec, tt.pts, TypeFill, Config{Color: "#00ff00"}, RenderOptions{}) {
				t.Fatal("Render returned false")
			}
			if got := rec.Count(recording.CmdFill); got != tt.fills {
				t.Errorf("Fill calls = %d, want %d", got, tt.fills)
			}
		})
	}
}

func TestRenderIsolatesState(t *testing.T) {
	reg := NewRegistry()
	rec := recording.NewRecorder(20, 20)
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	reg.Render(rec, pts, TypeSatin, Config{Color: "#ff0000", Thickness: 4}, RenderOptions{})
	cmds := rec.Commands()
	if cmds[0].Type() != recording.CmdSave || cmds[len(cmds)-1].Type() != recording.CmdRestore {
		t.Errorf("render not wrapped in Save/Restore: first=%v last=%v", cmds[0].Type(), cmds[len(cmds)-1].Type())
	}
	rec.Stroke()
	last := rec.Filter(recording.CmdStroke)
	if s := last[len(last)-1].(recording.StrokeCommand); s.LineWidth != 1 {
		t.Errorf("line width leaked: %v", s.LineWidth)
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	reg := NewRegistry()
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	tests := []struct {
		name string
		cfg  Config
	}{
		{"short color", Config{Color: "#fff"}},
		{"bad hex", Config{Color: "#zzzzzz"}},
		{"negative thickness", Config{Color: "#ffffff", Thickness: -2}},
		{"opacity above one", Config{Color: "#ffffff", Opacity: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.NewRecorder(20, 20)
			if reg.Render(rec, pts, TypeSatin, tt.cfg, RenderOptions{}) {
				t.Error("Render returned true")
			}
			if rec.Drew() {
				t.Error("invalid config drew")
			}
			rd, _ := reg.Lookup(TypeSatin)
			if err := rd.ValidateConfig(tt.cfg.withDefaults(rd.DefaultConfig())); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ValidateConfig err = %v", err)
			}
		})
	}
}

func TestRenderPreviewOpacity(t *testing.T) {
	reg := NewRegistry()
	rec := recording.NewRecorder(20, 20)
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	reg.Render(rec, pts, TypeSatin, Config{Color: "#ff0000", Opacity: 0.8}, RenderOptions{Opacity: 0.5})
	s := rec.Filter(recording.CmdStroke)[0].(recording.StrokeCommand)
	if math.Abs(s.Alpha-0.4) > 1e-9 {
		t.Errorf("stroke alpha = %v, want 0.4", s.Alpha)
	}
}

func TestChainLoopRadius(t *testing.T) {
	reg := NewRegistry()
	rec := recording.NewRecorder(100, 100)
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 90, Y: 0}}
	reg.Render(rec, pts, TypeChain, Config{Color: "#000000", Thickness: 2}, RenderOptions{})
	arcs := rec.Filter(recording.CmdArc)
	if len(arcs) != 2 {
		t.Fatalf("arcs = %d, want 2", len(arcs))
	}
	want := []float64{3, 4} // min(10*0.3, 4), min(80*0.3, 4)
	for i, a := range arcs {
		arc := a.(recording.ArcCommand)
		if math.Abs(arc.Radius-want[i]) > 1e-9 {
			t.Errorf("arc %d radius = %v, want %v", i, arc.Radius, want[i])
		}
	}
}

func TestKnotsPerPoint(t *testing.T) {
	reg := NewRegistry()
	pts := []embroider.Point{{X: 1, Y: 1}, {X: 5, Y: 5}, {X: 9, Y: 9}}
	tests := []struct {
		tool  string
		fills int
	}{
		{TypeFrenchKnot, 6},
		{TypeSeed, 3},
	}
	for _, tt := range tests {
		rec := recording.NewRecorder(20, 20)
		reg.Render(rec, pts, tt.tool, Config{Color: "#aa0000"}, RenderOptions{})
		if got := rec.Count(recording.CmdFill); got != tt.fills {
			t.Errorf("%s: fills = %d, want %d", tt.tool, got, tt.fills)
		}
	}
}

func TestSegmentRenderers(t *testing.T) {
	reg := NewRegistry()
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	for _, tool := range []string{TypeBackStitch, TypeHerringbone, TypeSatinRibbon, TypeVariegated, TypeGradient} {
		rec := recording.NewRecorder(20, 20)
		reg.Render(rec, pts, tool, Config{Color: "#123456"}, RenderOptions{})
		if got := rec.Count(recording.CmdStroke); got != 3 {
			t.Errorf("%s: strokes = %d, want 3", tool, got)
		}
	}
}

func TestShadowThreads(t *testing.T) {
	reg := NewRegistry()
	pts := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	for _, tool := range []string{TypeMetallic, TypeGlowThread} {
		rec := recording.NewRecorder(20, 20)
		reg.Render(rec, pts, tool, Config{Color: "#c0c0c0"}, RenderOptions{})
		sh := rec.Filter(recording.CmdSetShadow)
		if len(sh) == 0 || sh[0].(recording.SetShadowCommand).Shadow.Blur <= 0 {
			t.Errorf("%s: no blurred shadow set", tool)
		}
	}
}

func TestRenderOntoCanvas(t *testing.T) {
	c := embroider.MustNewCanvas(40, 40)
	reg := NewRegistry()
	s := New("s1", []embroider.Point{{X: 5, Y: 20}, {X: 35, Y: 20}}, Config{Type: "Satin", Color: "#0000ff", Thickness: 6, Opacity: 1})
	if s.Type != TypeSatin {
		t.Fatalf("stitch type = %q", s.Type)
	}
	if !reg.RenderStitch(c, s, RenderOptions{}) {
		t.Fatal("RenderStitch returned false")
	}
	if got := c.Pixmap().GetPixel(20, 20); got != embroider.Blue {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestConfigJSON(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"type":"cross-stitch","color":"#ff0000","thickness":2,"opacity":0.5}`), &cfg); err != nil {
		t.Fatal(err)
	}
	want := Config{Type: TypeCrossStitch, Color: "#ff0000", Thickness: 2, Opacity: 0.5}
	if cfg != want {
		t.Errorf("decoded %+v, want %+v", cfg, want)
	}
}
