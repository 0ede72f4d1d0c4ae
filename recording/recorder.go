package recording

import "github.com/gogpu/embroider"

// Recorder captures drawing operations as commands.
// It implements embroider.Context2D but generates commands instead of
// rasterizing pixels. Use FinishRecording to obtain an immutable Recording
// that can be replayed onto any Context2D.
//
// The Recorder tracks the paint, line width and global alpha so that Stroke
// and Fill commands carry a snapshot of the state they were issued under.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command

	state      recorderState
	stateStack []recorderState
}

// recorderState stores the graphics state for Save/Restore.
type recorderState struct {
	fill      embroider.Paint
	stroke    embroider.Paint
	lineWidth float64
	alpha     float64
}

// NewRecorder creates a new Recorder for the given dimensions.
// The Recorder starts with the canvas defaults: black fill and stroke,
// 1px line width and full opacity.
func NewRecorder(width, height int) *Recorder {
	black := embroider.Solid{Color: embroider.Black}
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 256),
		state: recorderState{
			fill:      black,
			stroke:    black,
			lineWidth: 1,
			alpha:     1,
		},
		stateStack: make([]recorderState, 0, 8),
	}
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. The Recorder can keep recording afterwards; later commands do
// not appear in the returned Recording.
func (r *Recorder) FinishRecording() *Recording {
	cmds := make([]Command, len(r.commands))
	copy(cmds, r.commands)
	return &Recording{width: r.width, height: r.height, commands: cmds}
}

// Recording is an immutable container for recorded drawing commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the recording width.
func (r *Recording) Width() int { return r.width }

// Height returns the recording height.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Playback replays every command onto dc in order.
func (r *Recording) Playback(dc embroider.Context2D) {
	for _, cmd := range r.commands {
		cmd.Apply(dc)
	}
}

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command { return r.commands }

// Count returns the number of recorded commands of type t.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Filter returns the recorded commands of type t, in order.
func (r *Recorder) Filter(t CommandType) []Command {
	var out []Command
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			out = append(out, cmd)
		}
	}
	return out
}

// Drew reports whether any command put pixels on the canvas.
func (r *Recorder) Drew() bool {
	for _, cmd := range r.commands {
		if cmd.Type().IsDrawing() {
			return true
		}
	}
	return false
}

// Reset discards all recorded commands and restores the default state.
func (r *Recorder) Reset() {
	fresh := NewRecorder(r.width, r.height)
	fresh.commands = r.commands[:0]
	*r = *fresh
}

func (r *Recorder) record(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int { return r.width }

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int { return r.height }

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save pushes the current state onto the stack.
func (r *Recorder) Save() {
	r.stateStack = append(r.stateStack, r.state)
	r.record(SaveCommand{})
}

// Restore pops the state from the stack.
func (r *Recorder) Restore() {
	if n := len(r.stateStack); n > 0 {
		r.state = r.stateStack[n-1]
		r.stateStack = r.stateStack[:n-1]
	}
	r.record(RestoreCommand{})
}

// SetGlobalAlpha records a global alpha change.
func (r *Recorder) SetGlobalAlpha(alpha float64) {
	if alpha >= 0 && alpha <= 1 {
		r.state.alpha = alpha
	}
	r.record(SetGlobalAlphaCommand{Alpha: alpha})
}

// SetCompositeOp records a composite operation change.
func (r *Recorder) SetCompositeOp(op embroider.CompositeOp) {
	r.record(SetCompositeOpCommand{Op: op})
}

// SetStrokeStyle records a stroke paint change.
func (r *Recorder) SetStrokeStyle(p embroider.Paint) {
	if p != nil {
		r.state.stroke = p
	}
	r.record(SetStrokeStyleCommand{Paint: p})
}

// SetFillStyle records a fill paint change.
func (r *Recorder) SetFillStyle(p embroider.Paint) {
	if p != nil {
		r.state.fill = p
	}
	r.record(SetFillStyleCommand{Paint: p})
}

// SetLineWidth records a line width change.
func (r *Recorder) SetLineWidth(width float64) {
	if width > 0 {
		r.state.lineWidth = width
	}
	r.record(SetLineWidthCommand{Width: width})
}

// SetLineCap records a line cap change.
func (r *Recorder) SetLineCap(lc embroider.LineCap) {
	r.record(SetLineCapCommand{Cap: lc})
}

// SetLineJoin records a line join change.
func (r *Recorder) SetLineJoin(lj embroider.LineJoin) {
	r.record(SetLineJoinCommand{Join: lj})
}

// SetShadow records a shadow change.
func (r *Recorder) SetShadow(s embroider.Shadow) {
	r.record(SetShadowCommand{Shadow: s})
}

// SetFilterBlur records a blur filter change.
func (r *Recorder) SetFilterBlur(px float64) {
	r.record(SetFilterBlurCommand{Radius: px})
}

// --------------------------------------------------------------------------
// Path
// --------------------------------------------------------------------------

// BeginPath records the start of a new path.
func (r *Recorder) BeginPath() { r.record(BeginPathCommand{}) }

// MoveTo records the start of a subpath.
func (r *Recorder) MoveTo(x, y float64) { r.record(MoveToCommand{X: x, Y: y}) }

// LineTo records a line segment.
func (r *Recorder) LineTo(x, y float64) { r.record(LineToCommand{X: x, Y: y}) }

// QuadraticTo records a quadratic curve.
func (r *Recorder) QuadraticTo(cx, cy, x, y float64) {
	r.record(QuadraticToCommand{CX: cx, CY: cy, X: x, Y: y})
}

// BezierCurveTo records a cubic curve.
func (r *Recorder) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.record(BezierCurveToCommand{C1X: c1x, C1Y: c1y, C2X: c2x, C2Y: c2y, X: x, Y: y})
}

// Arc records a clockwise arc.
func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.record(ArcCommand{X: x, Y: y, Radius: radius, Start: startAngle, End: endAngle})
}

// Rect records a rectangle subpath.
func (r *Recorder) Rect(x, y, w, h float64) {
	r.record(RectCommand{X: x, Y: y, W: w, H: h})
}

// ClosePath records closing the current subpath.
func (r *Recorder) ClosePath() { r.record(ClosePathCommand{}) }

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// Stroke records a stroke of the current path.
func (r *Recorder) Stroke() {
	r.record(StrokeCommand{
		Paint:     r.state.stroke,
		LineWidth: r.state.lineWidth,
		Alpha:     r.state.alpha,
	})
}

// Fill records a fill of the current path.
func (r *Recorder) Fill() {
	r.record(FillCommand{Paint: r.state.fill, Alpha: r.state.alpha})
}

// FillRect records a rectangle fill.
func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(FillRectCommand{X: x, Y: y, W: w, H: h})
}

// ClearRect records a rectangle clear.
func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(ClearRectCommand{X: x, Y: y, W: w, H: h})
}

// DrawImage records an image draw.
func (r *Recorder) DrawImage(src *embroider.Pixmap, dx, dy float64) {
	r.record(DrawImageCommand{Image: src, X: dx, Y: dy})
}

var _ embroider.Context2D = (*Recorder)(nil)
