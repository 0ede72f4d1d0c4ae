package embroider

// Context2D is the drawing contract every renderer in this module is written
// against. It mirrors the subset of the HTML CanvasRenderingContext2D that the
// layer compositor, the effects renderer and the stitch renderers use.
//
// Canvas is the software implementation; recording.Recorder captures the
// calls for inspection.
type Context2D interface {
	// Width returns the drawing surface width in pixels.
	Width() int
	// Height returns the drawing surface height in pixels.
	Height() int

	// Save pushes the current graphics state.
	Save()
	// Restore pops the graphics state pushed by the matching Save.
	// Unbalanced calls are ignored.
	Restore()

	SetGlobalAlpha(alpha float64)
	SetCompositeOp(op CompositeOp)
	SetStrokeStyle(p Paint)
	SetFillStyle(p Paint)
	SetLineWidth(width float64)
	SetLineCap(lc LineCap)
	SetLineJoin(lj LineJoin)
	SetShadow(s Shadow)
	// SetFilterBlur sets a CSS-style blur(px) filter applied to each
	// subsequent draw. Zero disables it.
	SetFilterBlur(px float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	// Arc adds a clockwise circular arc centered at (x, y).
	Arc(x, y, radius, startAngle, endAngle float64)
	Rect(x, y, w, h float64)
	ClosePath()

	Stroke()
	Fill()
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	// DrawImage composites src with its top-left corner at (dx, dy) using
	// the current global alpha and composite operation.
	DrawImage(src *Pixmap, dx, dy float64)
}

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin specifies the shape of joins between connected segments.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Shadow mirrors the canvas shadowColor/shadowBlur/shadowOffset properties.
// A shadow is drawn when its color is not transparent and it has a blur or
// an offset.
type Shadow struct {
	Color   RGBA
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// Active reports whether drawing with this shadow produces a shadow pass.
func (s Shadow) Active() bool {
	return s.Color.A > 0 && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}
