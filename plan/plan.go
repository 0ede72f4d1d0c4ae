// Package plan generates machine stitch plans from freehand polylines.
//
// A plan is the ordered list of needle positions an embroidery machine
// visits, in canvas pixels. Generate resamples the drawn polyline at the
// stitch length and lays stitches around it according to a Strategy:
//
//	p := plan.Generate(points, plan.Options{Strategy: plan.Satin, WidthMM: 3})
//	fmt.Println(p.Info.StitchCount)
//
// Sub-package dst writes and reads plans as Tajima DST machine files.
package plan

import (
	"fmt"
	"math"

	"github.com/gogpu/embroider"
)

// Kind is the machine command at a plan point.
type Kind uint8

const (
	KindStitch Kind = iota
	KindJump
	KindTrim
	KindColorChange
	KindStop
	KindEnd
)

var kindNames = [...]string{
	KindStitch:      "stitch",
	KindJump:        "jump",
	KindTrim:        "trim",
	KindColorChange: "color_change",
	KindStop:        "stop",
	KindEnd:         "end",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("plan: unknown kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("plan: unknown kind %q", b)
}

// Point is one needle position.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Kind  Kind    `json:"type"`
	Color string  `json:"color,omitempty"`
}

// Pos returns the position as a canvas point.
func (p Point) Pos() embroider.Point { return embroider.Pt(p.X, p.Y) }

// Info describes how a plan was produced.
type Info struct {
	Name        string   `json:"name,omitempty"`
	StitchCount int      `json:"stitch_count"`
	Strategy    Strategy `json:"strategy,omitempty"`
	MMPerPx     float64  `json:"mm_per_px,omitempty"`
	StitchLenMM float64  `json:"stitch_len_mm,omitempty"`
	WidthMM     float64  `json:"width_mm,omitempty"`
	Passes      int      `json:"passes,omitempty"`
}

// Plan is an ordered needle path.
type Plan struct {
	Points []Point `json:"points"`
	Info   Info    `json:"info"`
}

// Append adds p to the plan, counting stitches.
func (pl *Plan) Append(p Point) {
	pl.Points = append(pl.Points, p)
	if p.Kind == KindStitch {
		pl.Info.StitchCount++
	}
}

// Concat joins plans in order. Each plan keeps its own color change
// marker, so the result changes thread between them.
func Concat(plans ...Plan) Plan {
	var out Plan
	for i, p := range plans {
		if i == 0 {
			out.Info = p.Info
			out.Info.StitchCount = 0
		}
		for _, pt := range p.Points {
			out.Append(pt)
		}
	}
	return out
}

// Resample walks pts and returns points every spacing pixels along it,
// starting with the first point and always ending with the last. The
// distance walked carries across segment boundaries. Zero-length segments
// are skipped.
func Resample(pts []embroider.Point, spacing float64) []embroider.Point {
	if len(pts) < 2 || !(spacing > 0) {
		return pts
	}
	out := []embroider.Point{pts[0]}
	carry := 0.0 // distance walked since the last emitted point
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := a.Distance(b)
		if seg <= 1e-6 {
			continue
		}
		u := b.Sub(a).Mul(1 / seg)
		pos := spacing - carry
		for ; pos <= seg; pos += spacing {
			out = append(out, a.Add(u.Mul(pos)))
		}
		carry = seg - (pos - spacing)
	}
	if last := pts[len(pts)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}

// Tangent returns the unit direction of pts at index i, taken from its
// neighbours; the ends use their only segment. Degenerate directions,
// including paths of fewer than two points, are zero.
func Tangent(pts []embroider.Point, i int) embroider.Point {
	if len(pts) < 2 {
		return embroider.Point{}
	}
	var a, b embroider.Point
	switch {
	case i <= 0:
		a, b = pts[0], pts[1]
	case i >= len(pts)-1:
		a, b = pts[len(pts)-2], pts[len(pts)-1]
	default:
		a, b = pts[i-1], pts[i+1]
	}
	d := b.Sub(a)
	mag := d.Length()
	if mag == 0 {
		mag = 1
	}
	return d.Mul(1 / mag)
}

// normal is the left-hand normal of the tangent at i.
func normal(pts []embroider.Point, i int) embroider.Point {
	t := Tangent(pts, i)
	return embroider.Pt(-t.Y, t.X)
}

func bands(widthPx, stepPx float64) int {
	return max(1, int(math.Floor(math.Max(2, widthPx)/math.Max(1, stepPx))))
}
