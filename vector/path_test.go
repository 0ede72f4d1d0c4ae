package vector

import (
	"math"
	"testing"

	"github.com/gogpu/embroider"
)

func TestFlattenStraight(t *testing.T) {
	var p Path
	p.Add(Anchor(0, 0))
	p.Add(Anchor(10, 0))
	p.Add(Anchor(10, 10))
	pts := p.Flatten(0.25)
	want := []embroider.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if len(pts) != len(want) {
		t.Fatalf("Flatten = %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
	if l := p.Length(0.25); l != 20 {
		t.Errorf("Length = %v, want 20", l)
	}
}

func TestFlattenClosed(t *testing.T) {
	p := Path{Closed: true}
	p.Add(Anchor(0, 0))
	p.Add(Anchor(10, 0))
	p.Add(Anchor(10, 10))
	pts := p.Flatten(0.25)
	if len(pts) != 4 || pts[3] != pts[0] {
		t.Errorf("closed Flatten = %v", pts)
	}
	if l := p.Length(0.25); math.Abs(l-(20+10*math.Sqrt2)) > 1e-9 {
		t.Errorf("Length = %v", l)
	}
}

func TestFlattenCurveTolerance(t *testing.T) {
	out := embroider.Pt(0, -50)
	in := embroider.Pt(100, -50)
	p := Path{Points: []PathPoint{
		{Pos: embroider.Pt(0, 0), Out: &out},
		{Pos: embroider.Pt(100, 0), In: &in},
	}}
	seg := p.Segments()[0]
	for _, tol := range []float64{1, 0.1} {
		pts := p.Flatten(tol)
		if len(pts) < 4 {
			t.Fatalf("tol %v: only %d points", tol, len(pts))
		}
		// sample the curve and check it stays near the polyline
		for i := 0; i <= 50; i++ {
			c := seg.Eval(float64(i) / 50)
			if d := distToPolyline(c, pts); d > tol+1e-6 {
				t.Errorf("tol %v: curve point %v is %v from polyline", tol, c, d)
			}
		}
	}
	if fine, coarse := len(p.Flatten(0.1)), len(p.Flatten(1)); fine <= coarse {
		t.Errorf("finer tolerance gave %d points, coarse %d", fine, coarse)
	}
}

func TestHandles(t *testing.T) {
	in := embroider.Pt(5, -5)
	tests := []struct {
		name    string
		pt      PathPoint
		wantOut embroider.Point
	}{
		{"corner keeps missing out", PathPoint{Pos: embroider.Pt(10, 0), In: &in, Type: Corner}, embroider.Pt(10, 0)},
		{"smooth mirrors in", PathPoint{Pos: embroider.Pt(10, 0), In: &in, Type: Smooth}, embroider.Pt(15, 5)},
		{"symmetric mirrors in", PathPoint{Pos: embroider.Pt(10, 0), In: &in, Type: Symmetric}, embroider.Pt(15, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Path{Points: []PathPoint{Anchor(0, 0), tt.pt, Anchor(20, 0)}}
			segs := p.Segments()
			if got := segs[1].P1; got != tt.wantOut {
				t.Errorf("out handle = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestAutoHandles(t *testing.T) {
	p := Path{Points: []PathPoint{Anchor(0, 0), {Pos: embroider.Pt(6, 6), Type: Auto}, Anchor(12, 0)}}
	segs := p.Segments()
	if segs[0].P2 != embroider.Pt(4, 6) || segs[1].P1 != embroider.Pt(8, 6) {
		t.Errorf("auto handles = %v / %v", segs[0].P2, segs[1].P1)
	}
}

func TestSegmentsTooShort(t *testing.T) {
	var p Path
	if p.Segments() != nil || p.Flatten(1) != nil {
		t.Error("empty path produced geometry")
	}
	p.Add(Anchor(3, 4))
	if pts := p.Flatten(1); len(pts) != 1 {
		t.Errorf("single anchor Flatten = %v", pts)
	}
}

func TestPointTypeString(t *testing.T) {
	for _, pt := range []PointType{Corner, Smooth, Symmetric, Auto} {
		if got := ParsePointType(pt.String()); got != pt {
			t.Errorf("ParsePointType(%q) = %v", pt.String(), got)
		}
	}
	if ParsePointType("weird") != Corner {
		t.Error("unknown type should parse as corner")
	}
}

func TestClone(t *testing.T) {
	h := embroider.Pt(1, 1)
	p := &Path{Points: []PathPoint{{Pos: embroider.Pt(0, 0), Out: &h}}}
	cp := p.Clone()
	cp.Points[0].Out.X = 9
	if p.Points[0].Out.X != 1 {
		t.Error("Clone shares handle storage")
	}
}

func distToPolyline(p embroider.Point, pts []embroider.Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		ab := b.Sub(a)
		t := 0.0
		if l2 := ab.X*ab.X + ab.Y*ab.Y; l2 > 0 {
			t = math.Max(0, math.Min(1, ((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/l2))
		}
		best = math.Min(best, p.Distance(a.Lerp(b, t)))
	}
	return best
}
