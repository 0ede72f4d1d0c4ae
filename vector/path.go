// Package vector holds the editable Bezier paths drawn with the vector
// embroidery tool, and flattens them into the polylines stitch renderers
// walk.
package vector

import (
	"math"

	"github.com/gogpu/embroider"
)

// PointType controls how the handles of an anchor relate to each other.
type PointType uint8

const (
	// Corner anchors use their handles as given; missing handles make the
	// adjoining segment straight.
	Corner PointType = iota
	// Smooth anchors keep both handles on one line; a missing handle is
	// mirrored from the other one.
	Smooth
	// Symmetric anchors mirror the In handle to Out at the same length.
	Symmetric
	// Auto anchors derive both handles from their neighbours.
	Auto
)

var pointTypeNames = [...]string{
	Corner:    "corner",
	Smooth:    "smooth",
	Symmetric: "symmetric",
	Auto:      "auto",
}

func (t PointType) String() string {
	if int(t) < len(pointTypeNames) {
		return pointTypeNames[t]
	}
	return "unknown"
}

// ParsePointType parses the lower-case names printed by String. Unknown
// names are corners.
func ParsePointType(s string) PointType {
	for i, n := range pointTypeNames {
		if n == s {
			return PointType(i)
		}
	}
	return Corner
}

// PathPoint is one anchor of a path. In and Out are absolute control point
// positions; nil means the anchor has no handle on that side.
type PathPoint struct {
	Pos  embroider.Point  `json:"pos"`
	In   *embroider.Point `json:"in,omitempty"`
	Out  *embroider.Point `json:"out,omitempty"`
	Type PointType        `json:"type"`
}

// Anchor returns a corner point at (x, y).
func Anchor(x, y float64) PathPoint {
	return PathPoint{Pos: embroider.Pt(x, y)}
}

// Path is an open or closed sequence of anchors.
type Path struct {
	Points []PathPoint `json:"points"`
	Closed bool        `json:"closed"`
}

// Add appends an anchor.
func (p *Path) Add(pt PathPoint) {
	p.Points = append(p.Points, pt)
}

// Len returns the number of anchors.
func (p *Path) Len() int { return len(p.Points) }

// Anchors returns the anchor positions, ignoring handles.
func (p *Path) Anchors() []embroider.Point {
	out := make([]embroider.Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Pos
	}
	return out
}

// Reset drops every anchor.
func (p *Path) Reset() {
	p.Points = p.Points[:0]
	p.Closed = false
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	cp := &Path{Closed: p.Closed, Points: make([]PathPoint, len(p.Points))}
	for i, pt := range p.Points {
		cp.Points[i] = PathPoint{Pos: pt.Pos, Type: pt.Type, In: clonePt(pt.In), Out: clonePt(pt.Out)}
	}
	return cp
}

func clonePt(p *embroider.Point) *embroider.Point {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Segments returns the cubic segments of the path after resolving handles.
// A segment whose anchors have no handles between them is a straight
// line expressed as a cubic with its controls on the endpoints.
func (p *Path) Segments() []Cubic {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	in, out := p.handles()
	count := n - 1
	if p.Closed {
		count = n
	}
	segs := make([]Cubic, 0, count)
	for i := range count {
		j := (i + 1) % n
		segs = append(segs, Cubic{P0: p.Points[i].Pos, P1: out[i], P2: in[j], P3: p.Points[j].Pos})
	}
	return segs
}

// handles resolves the effective In and Out control points of every anchor.
func (p *Path) handles() (in, out []embroider.Point) {
	n := len(p.Points)
	in = make([]embroider.Point, n)
	out = make([]embroider.Point, n)
	for i, pt := range p.Points {
		in[i], out[i] = pt.Pos, pt.Pos
		if pt.In != nil {
			in[i] = *pt.In
		}
		if pt.Out != nil {
			out[i] = *pt.Out
		}
		switch pt.Type {
		case Smooth:
			switch {
			case pt.In != nil && pt.Out == nil:
				out[i] = pt.Pos.Add(pt.Pos.Sub(in[i]))
			case pt.Out != nil && pt.In == nil:
				in[i] = pt.Pos.Add(pt.Pos.Sub(out[i]))
			case pt.In != nil && pt.Out != nil:
				// keep Out's length, align it opposite In
				dir := pt.Pos.Sub(in[i]).Normalize()
				out[i] = pt.Pos.Add(dir.Mul(out[i].Distance(pt.Pos)))
			}
		case Symmetric:
			if pt.In != nil {
				out[i] = pt.Pos.Add(pt.Pos.Sub(in[i]))
			} else if pt.Out != nil {
				in[i] = pt.Pos.Add(pt.Pos.Sub(out[i]))
			}
		case Auto:
			prev, next, ok := p.neighbours(i)
			if !ok {
				continue
			}
			d := next.Sub(prev)
			t := embroider.Pt(d.X/6, d.Y/6)
			in[i], out[i] = pt.Pos.Sub(t), pt.Pos.Add(t)
		}
	}
	return in, out
}

// neighbours returns the anchors around i; open path ends use themselves.
func (p *Path) neighbours(i int) (prev, next embroider.Point, ok bool) {
	n := len(p.Points)
	if n < 2 {
		return prev, next, false
	}
	prev, next = p.Points[i].Pos, p.Points[i].Pos
	switch {
	case i > 0:
		prev = p.Points[i-1].Pos
	case p.Closed:
		prev = p.Points[n-1].Pos
	}
	switch {
	case i < n-1:
		next = p.Points[i+1].Pos
	case p.Closed:
		next = p.Points[0].Pos
	}
	return prev, next, true
}

// Flatten approximates the path with a polyline whose distance from the
// curve stays within tolerance pixels. Closed paths repeat the first
// point at the end.
func (p *Path) Flatten(tolerance float64) []embroider.Point {
	if len(p.Points) == 0 {
		return nil
	}
	if !(tolerance > 0) {
		tolerance = 0.25
	}
	out := []embroider.Point{p.Points[0].Pos}
	for _, c := range p.Segments() {
		out = c.flatten(out, tolerance, 0)
	}
	return out
}

// Length returns the arc length of the flattened path.
func (p *Path) Length(tolerance float64) float64 {
	pts := p.Flatten(tolerance)
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Distance(pts[i])
	}
	return l
}

// Cubic is a cubic Bezier segment.
type Cubic struct {
	P0, P1, P2, P3 embroider.Point
}

// Eval returns the point at parameter t in [0, 1].
func (c Cubic) Eval(t float64) embroider.Point {
	mt := 1 - t
	a, b, cc, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return embroider.Point{
		X: a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 (de Casteljau).
func (c Cubic) Subdivide() (Cubic, Cubic) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	return Cubic{c.P0, p01, p012, mid}, Cubic{mid, p123, p23, c.P3}
}

// IsLine reports whether both controls sit on the chord.
func (c Cubic) IsLine() bool {
	return c.flatness() < 1e-12
}

// flatness is the largest distance of a control point from the chord.
func (c Cubic) flatness() float64 {
	chord := c.P3.Sub(c.P0)
	l := chord.Length()
	if l < 1e-12 {
		return math.Max(c.P1.Distance(c.P0), c.P2.Distance(c.P0))
	}
	d1 := math.Abs(cross(chord, c.P1.Sub(c.P0))) / l
	d2 := math.Abs(cross(chord, c.P2.Sub(c.P0))) / l
	return math.Max(d1, d2)
}

const maxDepth = 16

func (c Cubic) flatten(out []embroider.Point, tol float64, depth int) []embroider.Point {
	if depth >= maxDepth || c.flatness() <= tol {
		return append(out, c.P3)
	}
	a, b := c.Subdivide()
	out = a.flatten(out, tol, depth+1)
	return b.flatten(out, tol, depth+1)
}

func cross(a, b embroider.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}
