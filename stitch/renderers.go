package stitch

import (
	"math"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/internal/prng"
)

// base carries the parts every renderer shares.
type base struct {
	id       string
	name     string
	defaults Config
}

func newBase(id, name string, thickness float64) base {
	return base{
		id:   id,
		name: name,
		defaults: Config{
			Type:      id,
			Color:     "#000000",
			Thickness: thickness,
			Opacity:   1,
			Density:   1,
		},
	}
}

func (b base) ID() string            { return b.id }
func (b base) Name() string          { return b.name }
func (b base) DefaultConfig() Config { return b.defaults }

func (b base) CanHandle(tool string, cfg Config) bool {
	return NormalizeType(tool) == b.id || NormalizeType(cfg.Type) == b.id
}

func (b base) ValidateConfig(cfg Config) error {
	return cfg.validate()
}

// Builtins returns a fresh instance of every built-in renderer.
func Builtins() []Renderer {
	rs := []Renderer{
		CrossStitch{newBase(TypeCrossStitch, "Cross Stitch", 3)},
		Satin{newBase(TypeSatin, "Satin Stitch", 4)},
		Chain{newBase(TypeChain, "Chain Stitch", 2)},
		Fill{newBase(TypeFill, "Fill Stitch", 1)},
		Knot{base: newBase(TypeFrenchKnot, "French Knot", 3), scale: 1, highlight: true},
		Knot{base: newBase(TypeSeed, "Seed Stitch", 2), scale: 0.5},
		Variegated{newBase(TypeVariegated, "Variegated Thread", 3)},
		Gradient{newBase(TypeGradient, "Gradient Thread", 3)},
		Metallic{newBase(TypeMetallic, "Metallic Thread", 2)},
		GlowThread{newBase(TypeGlowThread, "Glow Thread", 2)},
	}
	generic := []struct{ id, name string }{
		{TypeBackStitch, "Back Stitch"},
		{TypeRunningStitch, "Running Stitch"},
		{TypeBlanket, "Blanket Stitch"},
		{TypeFeather, "Feather Stitch"},
		{TypeHerringbone, "Herringbone Stitch"},
		{TypeBullion, "Bullion Knot"},
		{TypeLazyDaisy, "Lazy Daisy"},
		{TypeCouching, "Couching"},
		{TypeApplique, "Appliqué"},
		{TypeStem, "Stem Stitch"},
		{TypeSplit, "Split Stitch"},
		{TypeBrick, "Brick Stitch"},
		{TypeLongShort, "Long and Short"},
		{TypeFishbone, "Fishbone Stitch"},
		{TypeSatinRibbon, "Satin Ribbon"},
	}
	for _, g := range generic {
		rs = append(rs, Segments{newBase(g.id, g.name, 2)})
	}
	return rs
}

// CrossStitch draws an X every max(4, thickness*1.2) pixels along the path.
// Each X is drawn three times: a darker offset shadow at half opacity, the
// thread itself, and a lighter highlight at 70% size and opacity.
type CrossStitch struct{ base }

// Spacing returns the distance between stitch centers.
func (CrossStitch) Spacing(thickness float64) float64 {
	return math.Max(4, thickness*1.2)
}

func (r CrossStitch) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	spacing := r.Spacing(cfg.Thickness)
	half := spacing * 0.45
	dc.SetLineCap(embroider.LineCapRound)
	dc.SetLineWidth(math.Max(1, cfg.Thickness/2))

	passes := []struct {
		offset     float64
		brightness float64
		alpha      float64
		scale      float64
	}{
		{offset: 1, brightness: -40, alpha: 0.5, scale: 1},
		{offset: 0, brightness: 0, alpha: 1, scale: 1},
		{offset: 0, brightness: 40, alpha: 0.7, scale: 0.7},
	}
	noise := prng.NewStream(TypeCrossStitch, cfg.Color, len(pts))
	for i, c := range walk(pts, spacing) {
		jitter := noise.Next()*4 - 2
		thread := embroider.AdjustBrightness(cfg.Color, math.Sin(float64(i)*0.3)*5+jitter)
		for _, p := range passes {
			dc.SetGlobalAlpha(cfg.Opacity * p.alpha)
			dc.SetStrokeStyle(embroider.SolidHex(embroider.AdjustBrightness(thread, p.brightness)))
			h := half * p.scale
			x, y := c.X+p.offset, c.Y+p.offset
			dc.BeginPath()
			dc.MoveTo(x-h, y-h)
			dc.LineTo(x+h, y+h)
			dc.MoveTo(x+h, y-h)
			dc.LineTo(x-h, y+h)
			dc.Stroke()
		}
	}
}

// Satin strokes the whole path as one smooth band.
type Satin struct{ base }

func (r Satin) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	if len(pts) < 2 {
		return
	}
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetStrokeStyle(embroider.SolidHex(cfg.Color))
	dc.SetLineWidth(cfg.Thickness)
	dc.SetLineCap(embroider.LineCapRound)
	dc.SetLineJoin(embroider.LineJoinRound)
	polyline(dc, pts)
	dc.Stroke()
}

// Chain draws a loop at the middle of every segment with radius
// min(length*0.3, thickness*2).
type Chain struct{ base }

func (r Chain) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetStrokeStyle(embroider.SolidHex(cfg.Color))
	dc.SetLineWidth(math.Max(1, cfg.Thickness/2))
	for a, b := range segments(pts) {
		radius := math.Min(a.Distance(b)*0.3, cfg.Thickness*2)
		if radius <= 0 {
			continue
		}
		m := a.Midpoint(b)
		dc.BeginPath()
		dc.MoveTo(m.X+radius, m.Y)
		dc.Arc(m.X, m.Y, radius, 0, 2*math.Pi)
		dc.Stroke()
	}
}

// Fill closes the path and fills the polygon. Paths of fewer than three
// points enclose nothing and draw nothing.
type Fill struct{ base }

func (r Fill) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	if len(pts) < 3 {
		return
	}
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetFillStyle(embroider.SolidHex(cfg.Color))
	polyline(dc, pts)
	dc.ClosePath()
	dc.Fill()
}

// Knot draws a filled dot at every point. French knots are full size with
// a small lighter highlight; seed stitches are half size.
type Knot struct {
	base
	scale     float64
	highlight bool
}

func (r Knot) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	radius := cfg.Thickness * r.scale
	light := embroider.SolidHex(embroider.AdjustBrightness(cfg.Color, 60))
	for _, p := range pts {
		dc.SetGlobalAlpha(cfg.Opacity)
		dc.SetFillStyle(embroider.SolidHex(cfg.Color))
		dot(dc, p, radius)
		if r.highlight {
			dc.SetGlobalAlpha(cfg.Opacity * 0.6)
			dc.SetFillStyle(light)
			dot(dc, p.Add(embroider.Pt(-radius/3, -radius/3)), radius/3)
		}
	}
}

// Variegated strokes each segment with its brightness shifted by
// sin(i*0.5)*50.
type Variegated struct{ base }

func (r Variegated) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetLineWidth(cfg.Thickness)
	dc.SetLineCap(embroider.LineCapRound)
	i := 0
	for a, b := range segments(pts) {
		hex := embroider.AdjustBrightness(cfg.Color, math.Sin(float64(i)*0.5)*50)
		dc.SetStrokeStyle(embroider.SolidHex(hex))
		line(dc, a, b)
		i++
	}
}

// Gradient strokes each segment with a linear gradient from the thread
// color to a darker shade.
type Gradient struct{ base }

func (r Gradient) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	from := embroider.Hex(cfg.Color)
	to := embroider.Hex(embroider.AdjustBrightness(cfg.Color, -60))
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetLineWidth(cfg.Thickness)
	dc.SetLineCap(embroider.LineCapRound)
	for a, b := range segments(pts) {
		g := embroider.NewLinearGradient(a.X, a.Y, b.X, b.Y).
			AddColorStop(0, from).
			AddColorStop(1, to)
		dc.SetStrokeStyle(g)
		line(dc, a, b)
	}
}

// Metallic strokes the path with a bright glint shadow and a thin
// highlight line on top.
type Metallic struct{ base }

func (r Metallic) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	if len(pts) < 2 {
		return
	}
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetLineCap(embroider.LineCapRound)
	dc.SetLineJoin(embroider.LineJoinRound)
	dc.SetShadow(embroider.Shadow{
		Color: embroider.White.WithAlpha(0.6),
		Blur:  cfg.Thickness * 2,
	})
	dc.SetStrokeStyle(embroider.SolidHex(cfg.Color))
	dc.SetLineWidth(cfg.Thickness)
	polyline(dc, pts)
	dc.Stroke()

	dc.SetShadow(embroider.Shadow{})
	dc.SetStrokeStyle(embroider.SolidHex(embroider.AdjustBrightness(cfg.Color, 80)))
	dc.SetLineWidth(math.Max(0.5, cfg.Thickness/3))
	dc.Stroke()
}

// GlowThread strokes the path with a shadow of its own color.
type GlowThread struct{ base }

func (r GlowThread) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	if len(pts) < 2 {
		return
	}
	col := embroider.Hex(cfg.Color)
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetLineCap(embroider.LineCapRound)
	dc.SetLineJoin(embroider.LineJoinRound)
	dc.SetShadow(embroider.Shadow{Color: col, Blur: cfg.Thickness * 3})
	dc.SetStrokeStyle(embroider.Solid{Color: col})
	dc.SetLineWidth(cfg.Thickness)
	polyline(dc, pts)
	dc.Stroke()
}

// Segments strokes every segment of the path on its own. It backs the
// stitch types that have no geometry of their own yet, so they all look
// like plain lines.
type Segments struct{ base }

func (r Segments) Render(dc embroider.Context2D, pts []embroider.Point, cfg Config) {
	dc.SetGlobalAlpha(cfg.Opacity)
	dc.SetStrokeStyle(embroider.SolidHex(cfg.Color))
	dc.SetLineWidth(cfg.Thickness)
	dc.SetLineCap(embroider.LineCapRound)
	for a, b := range segments(pts) {
		line(dc, a, b)
	}
}

// walk returns the stitch centers along pts: each segment of length d gets
// ceil(d/spacing) evenly spaced centers starting at its first point.
func walk(pts []embroider.Point, spacing float64) []embroider.Point {
	var out []embroider.Point
	for a, b := range segments(pts) {
		d := a.Distance(b)
		n := int(math.Ceil(d / spacing))
		for j := range n {
			out = append(out, a.Lerp(b, float64(j)/float64(n)))
		}
	}
	return out
}

// segments yields consecutive point pairs.
func segments(pts []embroider.Point) func(yield func(a, b embroider.Point) bool) {
	return func(yield func(a, b embroider.Point) bool) {
		for i := 1; i < len(pts); i++ {
			if !yield(pts[i-1], pts[i]) {
				return
			}
		}
	}
}

func polyline(dc embroider.Context2D, pts []embroider.Point) {
	dc.BeginPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
}

func line(dc embroider.Context2D, a, b embroider.Point) {
	dc.BeginPath()
	dc.MoveTo(a.X, a.Y)
	dc.LineTo(b.X, b.Y)
	dc.Stroke()
}

func dot(dc embroider.Context2D, p embroider.Point, r float64) {
	dc.BeginPath()
	dc.Arc(p.X, p.Y, r, 0, 2*math.Pi)
	dc.Fill()
}
