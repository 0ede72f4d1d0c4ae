package effect

import (
	"math"

	"github.com/gogpu/embroider"
)

// Renderer applies effect stacks to layer pixmaps.
// The zero value is ready to use. A Renderer is not safe for concurrent use.
type Renderer struct {
	w, h int
}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderEffects returns a new pixmap holding src with every enabled effect
// applied in order. src is not modified. Effects with unknown or missing
// settings are skipped.
func (r *Renderer) RenderEffects(src *embroider.Pixmap, effects []Effect) *embroider.Pixmap {
	out := src.Clone()
	if out.Width() == 0 || out.Height() == 0 {
		return out
	}
	r.w, r.h = out.Width(), out.Height()
	result := r.wrap(out)

	for _, e := range effects {
		if !e.Enabled {
			continue
		}
		embroider.Logger().Debug("render effect", "id", e.ID, "kind", string(e.Kind()))
		switch s := e.Settings.(type) {
		case DropShadow:
			r.dropShadow(result, src, s)
		case InnerShadow:
			r.innerShadow(result, src, s)
		case OuterGlow:
			r.outerGlow(result, src, s)
		case InnerGlow:
			r.innerGlow(result, src, s)
		case BevelEmboss:
			r.bevelEmboss(result, src, s)
		case Stroke:
			r.stroke(result, src, s)
		case ColorOverlay:
			r.colorOverlay(result, src, s)
		case GradientOverlay:
			r.gradientOverlay(result, src, s)
		case PatternOverlay:
			r.patternOverlay(result, src, s)
		default:
			embroider.Logger().Warn("skipping effect with unknown settings", "id", e.ID)
		}
	}
	return out
}

func (r *Renderer) dropShadow(result *embroider.Canvas, src *embroider.Pixmap, s DropShadow) {
	spread := clampPercent(s.Spread)
	dx, dy := lightOffset(s.Angle, s.Distance)
	base := r.dilate(src, s.Size*spread)
	sh := r.silhouette(base, s.Size*(1-spread), dx, dy, color(s.Color, s.Opacity))
	composite(result, sh, embroider.OpDestinationOver, 1)
}

func (r *Renderer) innerShadow(result *embroider.Canvas, src *embroider.Pixmap, s InnerShadow) {
	dx, dy := lightOffset(s.Angle, s.Distance)
	edge := r.innerEdge(src, color(s.Color, s.Opacity), s.Size*(1-clampPercent(s.Choke)), dx, dy)
	composite(result, edge, embroider.OpSourceAtop, 1)
}

func (r *Renderer) outerGlow(result *embroider.Canvas, src *embroider.Pixmap, s OuterGlow) {
	spread := clampPercent(s.Spread)
	base := r.dilate(src, s.Size*spread)
	glow := r.silhouette(base, s.Size*(1-spread), 0, 0, color(s.Color, s.Opacity))
	composite(result, glow, embroider.OpScreen, 1)
}

func (r *Renderer) innerGlow(result *embroider.Canvas, src *embroider.Pixmap, s InnerGlow) {
	edge := r.innerEdge(src, color(s.Color, s.Opacity), s.Size*(1-clampPercent(s.Choke)), 0, 0)
	composite(result, edge, embroider.OpScreen, 1)
}

func (r *Renderer) bevelEmboss(result *embroider.Canvas, src *embroider.Pixmap, s BevelEmboss) {
	dist := math.Max(1, s.Size/2*s.Depth/100)
	dx, dy := lightOffset(s.Angle, dist)
	blur := s.Size/2 + s.Soften

	// The lit edge is the one facing the light, so the highlight is an
	// inner shadow cast from the opposite direction.
	hl := r.innerEdge(src, color(s.HighlightColor, s.HighlightOpacity), blur, -dx, -dy)
	composite(result, hl, embroider.OpSourceAtop, 1)
	sh := r.innerEdge(src, color(s.ShadowColor, s.ShadowOpacity), blur, dx, dy)
	composite(result, sh, embroider.OpSourceAtop, 1)
}

func (r *Renderer) stroke(result *embroider.Canvas, src *embroider.Pixmap, s Stroke) {
	col := color(s.Color, s.Opacity)
	outside, inside := s.Size, 0.0
	switch s.Position {
	case StrokeInside:
		outside, inside = 0, s.Size
	case StrokeCenter:
		outside, inside = s.Size/2, s.Size/2
	}

	if outside > 0 {
		ring := r.canvas()
		ring.DrawImage(r.silhouette(r.dilate(src, outside), 0, 0, 0, col), 0, 0)
		ring.SetCompositeOp(embroider.OpDestinationOut)
		ring.DrawImage(src, 0, 0)
		composite(result, ring.Pixmap(), embroider.OpDestinationOver, 1)
	}
	if inside > 0 {
		band := r.canvas()
		band.DrawImage(r.silhouette(r.dilate(r.inverse(src), inside), 0, 0, 0, col), 0, 0)
		band.SetCompositeOp(embroider.OpDestinationIn)
		band.DrawImage(src, 0, 0)
		composite(result, band.Pixmap(), embroider.OpSourceAtop, 1)
	}
}

func (r *Renderer) colorOverlay(result *embroider.Canvas, src *embroider.Pixmap, s ColorOverlay) {
	tint := r.silhouette(src, 0, 0, 0, color(s.Color, s.Opacity))
	composite(result, tint, s.BlendMode.CompositeOp(), 1)
}

func (r *Renderer) gradientOverlay(result *embroider.Canvas, src *embroider.Pixmap, s GradientOverlay) {
	if len(s.Stops) == 0 {
		return
	}
	a := s.Angle * math.Pi / 180
	dir := embroider.Pt(math.Cos(a), -math.Sin(a))
	half := (math.Abs(float64(r.w)*dir.X) + math.Abs(float64(r.h)*dir.Y)) / 2
	center := embroider.Pt(float64(r.w)/2, float64(r.h)/2)
	start := center.Sub(dir.Mul(half))
	end := center.Add(dir.Mul(half))

	g := embroider.NewLinearGradient(start.X, start.Y, end.X, end.Y)
	for _, st := range s.Stops {
		g.AddColorStop(st.Offset, color(st.Color, 1))
	}
	composite(result, r.fillInside(src, g), s.BlendMode.CompositeOp(), clamp01(s.Opacity))
}

func (r *Renderer) patternOverlay(result *embroider.Canvas, src *embroider.Pixmap, s PatternOverlay) {
	if s.Pattern == nil {
		embroider.Logger().Warn("pattern overlay without a pattern image")
		return
	}
	p := embroider.NewImagePattern(s.Pattern)
	if s.Scale > 0 {
		p.Scale = s.Scale
	}
	composite(result, r.fillInside(src, p), s.BlendMode.CompositeOp(), clamp01(s.Opacity))
}

// silhouette draws src offset by (dx, dy) and blurred, recolored to col.
func (r *Renderer) silhouette(src *embroider.Pixmap, blur, dx, dy float64, col embroider.RGBA) *embroider.Pixmap {
	c := r.canvas()
	c.SetFilterBlur(blur)
	c.DrawImage(src, dx, dy)
	c.SetFilterBlur(0)
	c.SetCompositeOp(embroider.OpSourceIn)
	c.SetFillStyle(embroider.Solid{Color: col})
	c.FillRect(0, 0, float64(r.w), float64(r.h))
	return c.Pixmap()
}

// innerEdge returns col where the offset, blurred shape does not cover the
// shape itself, clipped to the shape.
func (r *Renderer) innerEdge(src *embroider.Pixmap, col embroider.RGBA, blur, dx, dy float64) *embroider.Pixmap {
	c := r.canvas()
	c.SetFillStyle(embroider.Solid{Color: col})
	c.FillRect(0, 0, float64(r.w), float64(r.h))
	c.SetCompositeOp(embroider.OpDestinationOut)
	c.SetFilterBlur(blur)
	c.DrawImage(src, dx, dy)
	c.SetFilterBlur(0)
	c.SetCompositeOp(embroider.OpDestinationIn)
	c.DrawImage(src, 0, 0)
	return c.Pixmap()
}

// fillInside paints p wherever src has coverage.
func (r *Renderer) fillInside(src *embroider.Pixmap, p embroider.Paint) *embroider.Pixmap {
	c := r.canvas()
	c.DrawImage(src, 0, 0)
	c.SetCompositeOp(embroider.OpSourceIn)
	c.SetFillStyle(p)
	c.FillRect(0, 0, float64(r.w), float64(r.h))
	return c.Pixmap()
}

// inverse is opaque wherever src is transparent.
func (r *Renderer) inverse(src *embroider.Pixmap) *embroider.Pixmap {
	c := r.canvas()
	c.FillRect(0, 0, float64(r.w), float64(r.h))
	c.SetCompositeOp(embroider.OpDestinationOut)
	c.DrawImage(src, 0, 0)
	return c.Pixmap()
}

// dilate grows the shape by radius pixels by stamping it around concentric
// rings.
func (r *Renderer) dilate(src *embroider.Pixmap, radius float64) *embroider.Pixmap {
	if radius < 0.5 {
		return src
	}
	c := r.canvas()
	c.DrawImage(src, 0, 0)
	for ring := radius; ring > 0; ring -= 2 {
		steps := max(8, int(math.Ceil(2*math.Pi*ring/1.5)))
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			c.DrawImage(src, ring*math.Cos(a), ring*math.Sin(a))
		}
	}
	return c.Pixmap()
}

func (r *Renderer) canvas() *embroider.Canvas {
	return embroider.MustNewCanvas(r.w, r.h)
}

func (r *Renderer) wrap(pm *embroider.Pixmap) *embroider.Canvas {
	return embroider.MustNewCanvas(r.w, r.h, embroider.WithPixmap(pm))
}

// composite draws layer onto result with op, isolating the state change.
func composite(result *embroider.Canvas, layer *embroider.Pixmap, op embroider.CompositeOp, alpha float64) {
	result.Save()
	result.SetCompositeOp(op)
	result.SetGlobalAlpha(alpha)
	result.DrawImage(layer, 0, 0)
	result.Restore()
}

// color converts an effect color through the "r,g,b" triplet form, so a
// malformed hex renders black instead of failing.
func color(hex string, opacity float64) embroider.RGBA {
	return embroider.RGBFromTriplet(embroider.HexToRGB(hex), clamp01(opacity))
}

// lightOffset returns the displacement of a shadow cast by a light at
// angle degrees.
func lightOffset(angle, distance float64) (dx, dy float64) {
	a := angle * math.Pi / 180
	return -math.Cos(a) * distance, math.Sin(a) * distance
}

func clampPercent(p float64) float64 {
	return clamp01(p / 100)
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
