package embroider

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/embroider/internal/blend"
	"github.com/gogpu/embroider/internal/filter"
)

// Stroke outlines every subpath of the current path with the stroke paint.
func (c *Canvas) Stroke() {
	style := strokeStyle{
		width: c.st.lineWidth,
		cap:   c.st.lineCap,
		join:  c.st.lineJoin,
		tol:   c.tolerance,
	}
	var polys [][]Point
	for _, sp := range c.path {
		pts := dedupe(sp.pts)
		if len(pts) == 1 && len(sp.pts) > 1 {
			polys = append(polys, dotPolygons(pts[0], style)...)
			continue
		}
		polys = append(polys, strokePolygons(sp.pts, sp.closed, style)...)
	}
	c.paintPolygons(polys, c.st.stroke)
}

// Fill fills the current path with the fill paint. Open subpaths are
// closed implicitly.
func (c *Canvas) Fill() {
	var polys [][]Point
	for _, sp := range c.path {
		if len(sp.pts) < 3 {
			continue
		}
		poly := make([]Point, len(sp.pts))
		copy(poly, sp.pts)
		polys = append(polys, poly)
	}
	c.paintPolygons(polys, c.st.fill)
}

// FillRect fills a rectangle with the fill paint without touching the
// current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.paintPolygons([][]Point{rectPoints(x, y, w, h)}, c.st.fill)
}

// ClearRect makes the pixels in the rectangle transparent. It ignores
// global alpha, the composite operation, shadows and filters.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	polys := [][]Point{rectPoints(x, y, w, h)}
	orient(polys)
	r := polygonBounds(polys).Intersect(c.pixmap.Bounds())
	if r.Empty() {
		return
	}
	cov := rasterize(polys, r)
	data, stride := c.pixmap.data, c.pixmap.Stride()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			k := 255 - cov.Pix[(y-r.Min.Y)*cov.Stride+(x-r.Min.X)]
			if k == 255 {
				continue
			}
			i := y*stride + x*4
			data[i], data[i+1], data[i+2], data[i+3] = blend.Scale(data[i], data[i+1], data[i+2], data[i+3], k)
		}
	}
}

// DrawImage composites src with its top-left corner at (dx, dy), rounded to
// whole pixels.
func (c *Canvas) DrawImage(src *Pixmap, dx, dy float64) {
	if src == nil || src.IsEmpty() || !finite(dx, dy) {
		return
	}
	ox := int(math.Round(dx))
	oy := int(math.Round(dy))
	geom := image.Rect(ox, oy, ox+src.Width(), oy+src.Height())
	c.drawSource(geom, func(region image.Rectangle, buf []byte) {
		rw := region.Dx()
		for y := region.Min.Y; y < region.Max.Y; y++ {
			sy := y - oy
			if sy < 0 || sy >= src.Height() {
				continue
			}
			for x := region.Min.X; x < region.Max.X; x++ {
				sx := x - ox
				if sx < 0 || sx >= src.Width() {
					continue
				}
				si := sy*src.Stride() + sx*4
				di := ((y-region.Min.Y)*rw + (x - region.Min.X)) * 4
				copy(buf[di:di+4], src.data[si:si+4])
			}
		}
	})
}

// paintPolygons rasterizes polys and composites them with paint p.
func (c *Canvas) paintPolygons(polys [][]Point, p Paint) {
	if len(polys) == 0 || p == nil {
		return
	}
	orient(polys)
	c.drawSource(polygonBounds(polys), func(region image.Rectangle, buf []byte) {
		cov := rasterize(polys, region)
		if col, ok := uniform(p); ok {
			r, g, b, a := premul8(col)
			for i, k := range cov.Pix {
				if k == 0 {
					continue
				}
				buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3] = blend.Scale(r, g, b, a, k)
			}
			return
		}
		rw := region.Dx()
		for i, k := range cov.Pix {
			if k == 0 {
				continue
			}
			x := float64(region.Min.X+i%rw) + 0.5
			y := float64(region.Min.Y+i/rw) + 0.5
			r, g, b, a := premul8(p.ColorAt(x, y))
			buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3] = blend.Scale(r, g, b, a, k)
		}
	})
}

// drawSource renders a source image covering geom into an offscreen
// buffer, applies the blur filter and shadow, and composites the result.
func (c *Canvas) drawSource(geom image.Rectangle, fill func(region image.Rectangle, buf []byte)) {
	if geom.Empty() || c.st.alpha == 0 {
		return
	}
	sh := c.st.shadow
	shadowOn := sh.Active()

	pad := 0
	if c.st.blur > 0 {
		pad = blurPad(c.st.blur)
	}
	region := geom.Inset(-pad)
	reach := pad
	var off image.Point
	if shadowOn {
		off = image.Pt(int(math.Round(sh.OffsetX)), int(math.Round(sh.OffsetY)))
		spad := pad + blurPad(sh.Blur/2)
		region = region.Union(geom.Add(off).Inset(-spad))
		reach = spad + max(abs(off.X), abs(off.Y))
	}
	region = region.Intersect(c.pixmap.Bounds().Inset(-reach))
	if region.Empty() {
		return
	}

	rw, rh := region.Dx(), region.Dy()
	buf := make([]byte, rw*rh*4)
	fill(region, buf)
	if c.st.blur > 0 {
		filter.Blur(buf, rw, rh, c.st.blur)
	}

	alpha := to8(c.st.alpha)
	if shadowOn {
		shadow := filter.Shift(buf, rw, rh, off.X, off.Y)
		col := sh.Color.NRGBA()
		filter.Colorize(shadow, col.R, col.G, col.B, col.A)
		if sh.Blur > 0 {
			filter.Blur(shadow, rw, rh, sh.Blur/2)
		}
		c.composite(region, shadow, alpha)
	}
	c.composite(region, buf, alpha)
}

// composite blends an offscreen buffer covering region onto the pixmap.
// Unbounded operations also affect pixels outside region, where the
// source is transparent.
func (c *Canvas) composite(region image.Rectangle, src []byte, alpha byte) {
	mode := c.st.op.mode()
	bounds := c.pixmap.Bounds()
	clip := region.Intersect(bounds)
	stride := c.pixmap.Stride()
	rw := region.Dx()

	if !blend.Bounded(mode) {
		fn := blend.Get(mode)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if image.Pt(x, y).In(clip) {
					continue
				}
				i := y*stride + x*4
				d := c.pixmap.data[i : i+4]
				d[0], d[1], d[2], d[3] = fn(0, 0, 0, 0, d[0], d[1], d[2], d[3])
			}
		}
	}
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		di := y*stride + clip.Min.X*4
		si := ((y-region.Min.Y)*rw + (clip.Min.X - region.Min.X)) * 4
		n := clip.Dx() * 4
		blend.Span(mode, c.pixmap.data[di:di+n], src[si:si+n], alpha)
	}
}

// rasterize computes antialiased coverage of polys within region.
func rasterize(polys [][]Point, region image.Rectangle) *image.Alpha {
	w, h := region.Dx(), region.Dy()
	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	ox, oy := float64(region.Min.X), float64(region.Min.Y)
	for _, poly := range polys {
		local := make([]Point, len(poly))
		for i, p := range poly {
			local[i] = Point{X: p.X - ox, Y: p.Y - oy}
		}
		local = clipPolygon(local, float64(w), float64(h))
		if len(local) < 3 {
			continue
		}
		r.MoveTo(float32(local[0].X), float32(local[0].Y))
		for _, p := range local[1:] {
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// clipPolygon clips poly to the rectangle [0,w]x[0,h] (Sutherland-Hodgman).
func clipPolygon(poly []Point, w, h float64) []Point {
	edges := [4]struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{func(p Point) bool { return p.X >= 0 }, func(a, b Point) Point { return a.Lerp(b, a.X/(a.X-b.X)) }},
		{func(p Point) bool { return p.X <= w }, func(a, b Point) Point { return a.Lerp(b, (a.X-w)/(a.X-b.X)) }},
		{func(p Point) bool { return p.Y >= 0 }, func(a, b Point) Point { return a.Lerp(b, a.Y/(a.Y-b.Y)) }},
		{func(p Point) bool { return p.Y <= h }, func(a, b Point) Point { return a.Lerp(b, (a.Y-h)/(a.Y-b.Y)) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

// polygonBounds returns the integer rectangle enclosing all polygons.
func polygonBounds(polys [][]Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// blurPad is how far a Gaussian of the given sigma spreads.
func blurPad(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(3*sigma)) + 1
}

func premul8(c RGBA) (r, g, b, a byte) {
	a = to8(c.A)
	return to8(c.R * c.A), to8(c.G * c.A), to8(c.B * c.A), a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
