package embroider

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a canvas cannot be created for the
// requested size.
var ErrInvalidDimensions = errors.New("embroider: invalid canvas dimensions")

// Canvas is the software implementation of Context2D, drawing into a Pixmap.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	pixmap    *Pixmap
	st        drawState
	stack     []drawState
	path      []subpath
	tolerance float64
}

// drawState is the part of the canvas saved by Save and restored by Restore.
type drawState struct {
	alpha     float64
	op        CompositeOp
	stroke    Paint
	fill      Paint
	lineWidth float64
	lineCap   LineCap
	lineJoin  LineJoin
	shadow    Shadow
	blur      float64
}

func defaultState() drawState {
	return drawState{
		alpha:     1,
		op:        OpSourceOver,
		stroke:    Solid{Color: Black},
		fill:      Solid{Color: Black},
		lineWidth: 1,
		lineCap:   LineCapButt,
		lineJoin:  LineJoinMiter,
	}
}

// NewCanvas creates a canvas of the given size. Width and height must be
// positive; a canvas without a backing surface is a construction error,
// never a silently broken object.
func NewCanvas(width, height int, opts ...CanvasOption) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pm := o.pixmap
	if pm == nil {
		pm = NewPixmap(width, height)
	} else if pm.Width() != width || pm.Height() != height {
		return nil, fmt.Errorf("%w: pixmap is %dx%d, canvas is %dx%d",
			ErrInvalidDimensions, pm.Width(), pm.Height(), width, height)
	}
	return &Canvas{
		pixmap:    pm,
		st:        defaultState(),
		tolerance: o.tolerance,
	}, nil
}

// MustNewCanvas is like NewCanvas but panics on error.
// Use only when the dimensions are program constants.
func MustNewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	c, err := NewCanvas(width, height, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Pixmap returns the canvas backing store.
func (c *Canvas) Pixmap() *Pixmap { return c.pixmap }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.pixmap.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.pixmap.Height() }

// Save pushes the current graphics state onto the state stack.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.st)
}

// Restore pops the most recently saved graphics state.
// Restore without a matching Save is a no-op.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// SetGlobalAlpha sets the alpha applied to every draw. Values outside
// [0, 1] are ignored, as on an HTML canvas.
func (c *Canvas) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || alpha != alpha {
		return
	}
	c.st.alpha = alpha
}

// GlobalAlpha returns the current global alpha.
func (c *Canvas) GlobalAlpha() float64 { return c.st.alpha }

// SetCompositeOp sets the composite operation for subsequent draws.
func (c *Canvas) SetCompositeOp(op CompositeOp) { c.st.op = op }

// CompositeOp returns the current composite operation.
func (c *Canvas) CompositeOp() CompositeOp { return c.st.op }

// SetStrokeStyle sets the stroke paint. A nil paint is ignored.
func (c *Canvas) SetStrokeStyle(p Paint) {
	if p != nil {
		c.st.stroke = p
	}
}

// SetFillStyle sets the fill paint. A nil paint is ignored.
func (c *Canvas) SetFillStyle(p Paint) {
	if p != nil {
		c.st.fill = p
	}
}

// SetLineWidth sets the stroke width. Non-positive values are ignored.
func (c *Canvas) SetLineWidth(width float64) {
	if width > 0 {
		c.st.lineWidth = width
	}
}

// LineWidth returns the current stroke width.
func (c *Canvas) LineWidth() float64 { return c.st.lineWidth }

// SetLineCap sets the line cap style.
func (c *Canvas) SetLineCap(lc LineCap) { c.st.lineCap = lc }

// SetLineJoin sets the line join style.
func (c *Canvas) SetLineJoin(lj LineJoin) { c.st.lineJoin = lj }

// SetShadow sets the shadow drawn beneath subsequent draws.
func (c *Canvas) SetShadow(s Shadow) { c.st.shadow = s }

// SetFilterBlur sets a blur(px) filter for subsequent draws.
func (c *Canvas) SetFilterBlur(px float64) {
	if px < 0 {
		px = 0
	}
	c.st.blur = px
}

// Clear makes every pixel transparent, ignoring state.
func (c *Canvas) Clear() {
	c.pixmap.Clear(Transparent)
}

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *Pixmap {
	return c.pixmap.Clone()
}

var _ Context2D = (*Canvas)(nil)
