package embroider

import "math"

// subpath is a flattened polyline of the current path.
type subpath struct {
	pts    []Point
	closed bool
}

// maxCurveSegments bounds the flattening of a single curve.
const maxCurveSegments = 1024

// BeginPath discards the current path.
func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

// MoveTo starts a new subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.path = append(c.path, subpath{pts: []Point{{X: x, Y: y}}})
}

// LineTo adds a straight segment to (x, y). Without a current subpath it
// behaves like MoveTo.
func (c *Canvas) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	sp := c.current()
	if sp == nil {
		c.MoveTo(x, y)
		return
	}
	sp.pts = append(sp.pts, Point{X: x, Y: y})
}

// QuadraticTo adds a quadratic Bézier curve with control point (cx, cy).
func (c *Canvas) QuadraticTo(cx, cy, x, y float64) {
	if !finite(cx, cy, x, y) {
		return
	}
	sp := c.ensure(cx, cy)
	p0 := sp.pts[len(sp.pts)-1]
	p1 := Point{X: cx, Y: cy}
	p2 := Point{X: x, Y: y}

	dd := p0.Sub(p1.Mul(2)).Add(p2).Length()
	n := curveSegments(math.Sqrt(dd / (8 * c.tolerance)))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		sp.pts = append(sp.pts, Point{
			X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
		})
	}
}

// BezierCurveTo adds a cubic Bézier curve.
func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !finite(c1x, c1y, c2x, c2y, x, y) {
		return
	}
	sp := c.ensure(c1x, c1y)
	p0 := sp.pts[len(sp.pts)-1]
	p1 := Point{X: c1x, Y: c1y}
	p2 := Point{X: c2x, Y: c2y}
	p3 := Point{X: x, Y: y}

	dd := math.Max(
		p0.Sub(p1.Mul(2)).Add(p2).Length(),
		p1.Sub(p2.Mul(2)).Add(p3).Length(),
	)
	n := curveSegments(math.Sqrt(3 * dd / (4 * c.tolerance)))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		cc := 3 * mt * t * t
		d := t * t * t
		sp.pts = append(sp.pts, Point{
			X: a*p0.X + b*p1.X + cc*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + cc*p2.Y + d*p3.Y,
		})
	}
}

// Arc adds a clockwise arc of the circle centered at (x, y). A straight line
// joins the current point to the start of the arc. A sweep of 2π or more
// draws the full circle.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64) {
	if !finite(x, y, radius, startAngle, endAngle) || radius < 0 {
		return
	}
	sweep := endAngle - startAngle
	if sweep >= 2*math.Pi {
		sweep = 2 * math.Pi
	} else {
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	}

	start := Point{X: x + radius*math.Cos(startAngle), Y: y + radius*math.Sin(startAngle)}
	if sp := c.current(); sp == nil {
		c.MoveTo(start.X, start.Y)
	} else {
		sp.pts = append(sp.pts, start)
	}
	if radius == 0 || sweep == 0 {
		return
	}
	sp := c.current()
	n := curveSegments(sweep / arcStep(radius, c.tolerance))
	for i := 1; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		sp.pts = append(sp.pts, Point{X: x + radius*math.Cos(a), Y: y + radius*math.Sin(a)})
	}
}

// Rect adds a closed rectangle subpath and starts a new subpath at (x, y).
func (c *Canvas) Rect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	c.path = append(c.path, subpath{
		pts:    rectPoints(x, y, w, h),
		closed: true,
	})
	c.MoveTo(x, y)
}

// ClosePath closes the current subpath and starts a new one at its first
// point.
func (c *Canvas) ClosePath() {
	sp := c.current()
	if sp == nil {
		return
	}
	first := sp.pts[0]
	if len(sp.pts) > 1 {
		sp.closed = true
	}
	c.path = append(c.path, subpath{pts: []Point{first}})
}

func (c *Canvas) current() *subpath {
	if len(c.path) == 0 {
		return nil
	}
	return &c.path[len(c.path)-1]
}

// ensure returns the current subpath, starting one at (x, y) if needed.
func (c *Canvas) ensure(x, y float64) *subpath {
	if sp := c.current(); sp != nil {
		return sp
	}
	c.MoveTo(x, y)
	return c.current()
}

func rectPoints(x, y, w, h float64) []Point {
	return []Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

// arcStep is the angle per segment that keeps a chord within tol of a
// circle of radius r.
func arcStep(r, tol float64) float64 {
	if r <= tol {
		return math.Pi / 4
	}
	step := 2 * math.Acos(1-tol/r)
	if step > math.Pi/4 {
		step = math.Pi / 4
	}
	return step
}

func curveSegments(f float64) int {
	n := int(math.Ceil(f))
	if n < 1 {
		return 1
	}
	if n > maxCurveSegments {
		return maxCurveSegments
	}
	return n
}

// circlePolygon approximates a full circle.
func circlePolygon(center Point, r, tol float64) []Point {
	n := curveSegments(2 * math.Pi / arcStep(r, tol))
	if n < 8 {
		n = 8
	}
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
