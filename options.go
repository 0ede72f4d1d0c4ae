package embroider

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	// Default: a fresh transparent pixmap
//	dc, err := embroider.NewCanvas(800, 600)
//
//	// Draw into an existing pixmap
//	dc, err := embroider.NewCanvas(800, 600, embroider.WithPixmap(pm))
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	pixmap    *Pixmap
	tolerance float64
}

func defaultCanvasOptions() canvasOptions {
	return canvasOptions{
		tolerance: 0.25,
	}
}

// WithPixmap makes the canvas draw into pm instead of allocating its own
// buffer. The pixmap dimensions must match the canvas dimensions.
func WithPixmap(pm *Pixmap) CanvasOption {
	return func(o *canvasOptions) {
		o.pixmap = pm
	}
}

// WithTolerance sets the maximum distance in pixels between a curve and the
// polyline that approximates it. Smaller values give smoother arcs at the
// cost of more segments. Non-positive values are ignored.
func WithTolerance(px float64) CanvasOption {
	return func(o *canvasOptions) {
		if px > 0 {
			o.tolerance = px
		}
	}
}
