package embroider

// Paint supplies the color for fills and strokes, like a canvas
// fillStyle/strokeStyle (a color, a CanvasGradient or a CanvasPattern).
type Paint interface {
	// ColorAt returns the straight-alpha color at the given canvas point.
	ColorAt(x, y float64) RGBA
}

// Solid is a single-color paint.
type Solid struct {
	Color RGBA
}

// ColorAt implements Paint.
func (s Solid) ColorAt(_, _ float64) RGBA {
	return s.Color
}

// SolidHex returns a solid paint from a hex string. Malformed input paints
// opaque black, matching Hex.
func SolidHex(hex string) Solid {
	return Solid{Color: Hex(hex)}
}

// uniform reports whether p has the same color everywhere, which lets the
// rasterizer skip per-pixel ColorAt calls.
func uniform(p Paint) (RGBA, bool) {
	switch s := p.(type) {
	case Solid:
		return s.Color, true
	case *Solid:
		return s.Color, true
	}
	return RGBA{}, false
}
