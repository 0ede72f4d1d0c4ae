package embroider

import "math"

// miterLimit matches the canvas default miterLimit.
const miterLimit = 10

// strokeStyle is the geometry part of the stroke state.
type strokeStyle struct {
	width float64
	cap   LineCap
	join  LineJoin
	tol   float64
}

// strokePolygons expands a polyline into polygons whose union is the
// stroke outline: one quad per segment plus join and cap pieces.
func strokePolygons(pts []Point, closed bool, s strokeStyle) [][]Point {
	pts = dedupe(pts)
	hw := s.width / 2
	if hw <= 0 {
		return nil
	}
	if closed && len(pts) > 2 && pts[0].Distance(pts[len(pts)-1]) < 1e-9 {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return nil
	}
	if len(pts) == 2 && closed {
		closed = false
	}

	var polys [][]Point
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		nrm := b.Sub(a).Normalize().Perp().Mul(hw)
		polys = append(polys, []Point{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)})
	}

	join := func(prev, p, next Point) {
		if poly := joinPolygon(prev, p, next, hw, s); poly != nil {
			polys = append(polys, poly)
		}
	}
	if closed {
		for i := 0; i < n; i++ {
			join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
		}
	} else {
		for i := 1; i < n-1; i++ {
			join(pts[i-1], pts[i], pts[i+1])
		}
		polys = append(polys, capPolygons(pts[0], pts[1], hw, s)...)
		polys = append(polys, capPolygons(pts[n-1], pts[n-2], hw, s)...)
	}
	return polys
}

// dotPolygons draws the caps of a zero-length subpath, the way browsers do
// for moveTo(p); lineTo(p) with round or square caps.
func dotPolygons(p Point, s strokeStyle) [][]Point {
	hw := s.width / 2
	switch s.cap {
	case LineCapRound:
		return [][]Point{circlePolygon(p, hw, s.tol)}
	case LineCapSquare:
		return [][]Point{rectPoints(p.X-hw, p.Y-hw, s.width, s.width)}
	}
	return nil
}

// joinPolygon fills the wedge on the outer side of the corner at p.
func joinPolygon(prev, p, next Point, hw float64, s strokeStyle) []Point {
	d0 := p.Sub(prev).Normalize()
	d1 := next.Sub(p).Normalize()
	if s.join == LineJoinRound {
		return circlePolygon(p, hw, s.tol)
	}
	cross := d0.X*d1.Y - d0.Y*d1.X
	if math.Abs(cross) < 1e-9 {
		return nil
	}
	sign := 1.0
	if cross > 0 {
		sign = -1
	}
	o0 := d0.Perp().Mul(hw * sign)
	o1 := d1.Perp().Mul(hw * sign)
	if s.join == LineJoinMiter {
		m := o0.Add(o1).Normalize()
		cosHalf := (m.X*o0.X + m.Y*o0.Y) / hw
		if cosHalf > 1/float64(miterLimit) {
			tip := p.Add(m.Mul(hw / cosHalf))
			return []Point{p, p.Add(o0), tip, p.Add(o1)}
		}
	}
	return []Point{p, p.Add(o0), p.Add(o1)}
}

// capPolygons returns the cap at end, where the segment arrives from from.
func capPolygons(end, from Point, hw float64, s strokeStyle) [][]Point {
	switch s.cap {
	case LineCapRound:
		return [][]Point{circlePolygon(end, hw, s.tol)}
	case LineCapSquare:
		d := end.Sub(from).Normalize()
		nrm := d.Perp().Mul(hw)
		ext := end.Add(d.Mul(hw))
		return [][]Point{{end.Add(nrm), ext.Add(nrm), ext.Sub(nrm), end.Sub(nrm)}}
	}
	return nil
}

func dedupe(pts []Point) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]Point, 1, len(pts))
	out[0] = pts[0]
	for _, p := range pts[1:] {
		if p.Distance(out[len(out)-1]) > 1e-9 {
			out = append(out, p)
		}
	}
	return out
}

// signedArea is positive for polygons wound clockwise in y-down space.
func signedArea(poly []Point) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}

// orient makes every polygon wind the same way so overlapping pieces add
// up instead of cancelling in the coverage accumulator.
func orient(polys [][]Point) {
	for _, poly := range polys {
		if signedArea(poly) < 0 {
			for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
				poly[i], poly[j] = poly[j], poly[i]
			}
		}
	}
}
