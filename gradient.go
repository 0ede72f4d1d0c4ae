package embroider

import (
	"sort"
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA
}

// LinearGradient is the equivalent of a CanvasGradient created with
// createLinearGradient: colors vary along the line from Start to End and are
// padded beyond both ends.
//
// Example:
//
//	g := embroider.NewLinearGradient(0, 0, 100, 0).
//	    AddColorStop(0, embroider.Red).
//	    AddColorStop(1, embroider.Blue)
//	dc.SetStrokeStyle(g)
type LinearGradient struct {
	Start Point
	End   Point
	Stops []ColorStop
}

// NewLinearGradient creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start: Point{X: x0, Y: y0},
		End:   Point{X: x1, Y: y1},
	}
}

// AddColorStop adds a color stop at offset, clamped to [0, 1].
// Stops are kept sorted; equal offsets keep insertion order.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: clamp01(offset), Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Offset < g.Stops[j].Offset
	})
	return g
}

// ColorAt implements Paint.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	if len(g.Stops) == 0 {
		return Transparent
	}
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return g.Stops[0].Color
	}
	t := clamp01(((x-g.Start.X)*dx + (y-g.Start.Y)*dy) / lengthSq)
	return colorAtOffset(g.Stops, t)
}

// colorAtOffset interpolates sorted stops at t in [0, 1].
func colorAtOffset(stops []ColorStop, t float64) RGBA {
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}
	a, b := stops[idx-1], stops[idx]
	if b.Offset == a.Offset {
		return b.Color
	}
	return a.Color.Lerp(b.Color, (t-a.Offset)/(b.Offset-a.Offset))
}
