// Package recording captures Context2D calls as typed commands.
//
// A Recorder stands in for a canvas wherever a renderer expects an
// embroider.Context2D. The recorded commands can be inspected (counted,
// filtered, searched) or replayed onto a real canvas:
//
//	rec := recording.NewRecorder(800, 600)
//	renderer.Render(rec, stitch)
//	if rec.Count(recording.CmdMoveTo) != 6 { ... }
//
//	c, _ := embroider.NewCanvas(800, 600)
//	rec.FinishRecording().Playback(c)
//
// Commands are plain structs, one per drawing call, so a recording reads
// the same way the drawing code was written.
package recording

import "github.com/gogpu/embroider"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave CommandType = iota
	CmdRestore
	CmdSetGlobalAlpha
	CmdSetCompositeOp
	CmdSetStrokeStyle
	CmdSetFillStyle
	CmdSetLineWidth
	CmdSetLineCap
	CmdSetLineJoin
	CmdSetShadow
	CmdSetFilterBlur

	// Path commands
	CmdBeginPath
	CmdMoveTo
	CmdLineTo
	CmdQuadraticTo
	CmdBezierCurveTo
	CmdArc
	CmdRect
	CmdClosePath

	// Drawing commands
	CmdStroke
	CmdFill
	CmdFillRect
	CmdClearRect
	CmdDrawImage
)

var commandTypeNames = [...]string{
	CmdSave:           "Save",
	CmdRestore:        "Restore",
	CmdSetGlobalAlpha: "SetGlobalAlpha",
	CmdSetCompositeOp: "SetCompositeOp",
	CmdSetStrokeStyle: "SetStrokeStyle",
	CmdSetFillStyle:   "SetFillStyle",
	CmdSetLineWidth:   "SetLineWidth",
	CmdSetLineCap:     "SetLineCap",
	CmdSetLineJoin:    "SetLineJoin",
	CmdSetShadow:      "SetShadow",
	CmdSetFilterBlur:  "SetFilterBlur",
	CmdBeginPath:      "BeginPath",
	CmdMoveTo:         "MoveTo",
	CmdLineTo:         "LineTo",
	CmdQuadraticTo:    "QuadraticTo",
	CmdBezierCurveTo:  "BezierCurveTo",
	CmdArc:            "Arc",
	CmdRect:           "Rect",
	CmdClosePath:      "ClosePath",
	CmdStroke:         "Stroke",
	CmdFill:           "Fill",
	CmdFillRect:       "FillRect",
	CmdClearRect:      "ClearRect",
	CmdDrawImage:      "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsDrawing reports whether commands of this type put pixels on the canvas.
func (c CommandType) IsDrawing() bool {
	return c >= CmdStroke && c <= CmdDrawImage
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
	// Apply replays the command onto dc.
	Apply(dc embroider.Context2D)
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the current graphics state.
type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }
func (SaveCommand) Apply(dc embroider.Context2D) { dc.Save() }

// RestoreCommand restores the previously saved graphics state.
type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }
func (RestoreCommand) Apply(dc embroider.Context2D) { dc.Restore() }

// SetGlobalAlphaCommand sets the global alpha.
type SetGlobalAlphaCommand struct {
	Alpha float64
}

func (SetGlobalAlphaCommand) Type() CommandType { return CmdSetGlobalAlpha }
func (c SetGlobalAlphaCommand) Apply(dc embroider.Context2D) {
	dc.SetGlobalAlpha(c.Alpha)
}

// SetCompositeOpCommand sets the composite operation.
type SetCompositeOpCommand struct {
	Op embroider.CompositeOp
}

func (SetCompositeOpCommand) Type() CommandType { return CmdSetCompositeOp }
func (c SetCompositeOpCommand) Apply(dc embroider.Context2D) {
	dc.SetCompositeOp(c.Op)
}

// SetStrokeStyleCommand sets the stroke paint.
type SetStrokeStyleCommand struct {
	Paint embroider.Paint
}

func (SetStrokeStyleCommand) Type() CommandType { return CmdSetStrokeStyle }
func (c SetStrokeStyleCommand) Apply(dc embroider.Context2D) {
	dc.SetStrokeStyle(c.Paint)
}

// SetFillStyleCommand sets the fill paint.
type SetFillStyleCommand struct {
	Paint embroider.Paint
}

func (SetFillStyleCommand) Type() CommandType { return CmdSetFillStyle }
func (c SetFillStyleCommand) Apply(dc embroider.Context2D) {
	dc.SetFillStyle(c.Paint)
}

// SetLineWidthCommand sets the stroke width.
type SetLineWidthCommand struct {
	Width float64
}

func (SetLineWidthCommand) Type() CommandType { return CmdSetLineWidth }
func (c SetLineWidthCommand) Apply(dc embroider.Context2D) {
	dc.SetLineWidth(c.Width)
}

// SetLineCapCommand sets the line cap style.
type SetLineCapCommand struct {
	Cap embroider.LineCap
}

func (SetLineCapCommand) Type() CommandType { return CmdSetLineCap }
func (c SetLineCapCommand) Apply(dc embroider.Context2D) {
	dc.SetLineCap(c.Cap)
}

// SetLineJoinCommand sets the line join style.
type SetLineJoinCommand struct {
	Join embroider.LineJoin
}

func (SetLineJoinCommand) Type() CommandType { return CmdSetLineJoin }
func (c SetLineJoinCommand) Apply(dc embroider.Context2D) {
	dc.SetLineJoin(c.Join)
}

// SetShadowCommand sets the shadow.
type SetShadowCommand struct {
	Shadow embroider.Shadow
}

func (SetShadowCommand) Type() CommandType { return CmdSetShadow }
func (c SetShadowCommand) Apply(dc embroider.Context2D) {
	dc.SetShadow(c.Shadow)
}

// SetFilterBlurCommand sets the blur filter radius.
type SetFilterBlurCommand struct {
	Radius float64
}

func (SetFilterBlurCommand) Type() CommandType { return CmdSetFilterBlur }
func (c SetFilterBlurCommand) Apply(dc embroider.Context2D) {
	dc.SetFilterBlur(c.Radius)
}

// --------------------------------------------------------------------------
// Path Commands
// --------------------------------------------------------------------------

// BeginPathCommand discards the current path.
type BeginPathCommand struct{}

func (BeginPathCommand) Type() CommandType { return CmdBeginPath }
func (BeginPathCommand) Apply(dc embroider.Context2D) { dc.BeginPath() }

// MoveToCommand starts a new subpath.
type MoveToCommand struct {
	X, Y float64
}

func (MoveToCommand) Type() CommandType { return CmdMoveTo }
func (c MoveToCommand) Apply(dc embroider.Context2D) { dc.MoveTo(c.X, c.Y) }

// LineToCommand adds a line segment.
type LineToCommand struct {
	X, Y float64
}

func (LineToCommand) Type() CommandType { return CmdLineTo }
func (c LineToCommand) Apply(dc embroider.Context2D) { dc.LineTo(c.X, c.Y) }

// QuadraticToCommand adds a quadratic curve.
type QuadraticToCommand struct {
	CX, CY, X, Y float64
}

func (QuadraticToCommand) Type() CommandType { return CmdQuadraticTo }
func (c QuadraticToCommand) Apply(dc embroider.Context2D) {
	dc.QuadraticTo(c.CX, c.CY, c.X, c.Y)
}

// BezierCurveToCommand adds a cubic curve.
type BezierCurveToCommand struct {
	C1X, C1Y, C2X, C2Y, X, Y float64
}

func (BezierCurveToCommand) Type() CommandType { return CmdBezierCurveTo }
func (c BezierCurveToCommand) Apply(dc embroider.Context2D) {
	dc.BezierCurveTo(c.C1X, c.C1Y, c.C2X, c.C2Y, c.X, c.Y)
}

// ArcCommand adds a clockwise arc.
type ArcCommand struct {
	X, Y, Radius, Start, End float64
}

func (ArcCommand) Type() CommandType { return CmdArc }
func (c ArcCommand) Apply(dc embroider.Context2D) {
	dc.Arc(c.X, c.Y, c.Radius, c.Start, c.End)
}

// RectCommand adds a rectangle subpath.
type RectCommand struct {
	X, Y, W, H float64
}

func (RectCommand) Type() CommandType { return CmdRect }
func (c RectCommand) Apply(dc embroider.Context2D) { dc.Rect(c.X, c.Y, c.W, c.H) }

// ClosePathCommand closes the current subpath.
type ClosePathCommand struct{}

func (ClosePathCommand) Type() CommandType { return CmdClosePath }
func (ClosePathCommand) Apply(dc embroider.Context2D) { dc.ClosePath() }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// StrokeCommand strokes the current path. The state fields snapshot what
// was in effect when the stroke was issued, so tests can assert on them
// without replaying the recording.
type StrokeCommand struct {
	Paint     embroider.Paint
	LineWidth float64
	Alpha     float64
}

func (StrokeCommand) Type() CommandType { return CmdStroke }
func (StrokeCommand) Apply(dc embroider.Context2D) { dc.Stroke() }

// FillCommand fills the current path.
type FillCommand struct {
	Paint embroider.Paint
	Alpha float64
}

func (FillCommand) Type() CommandType { return CmdFill }
func (FillCommand) Apply(dc embroider.Context2D) { dc.Fill() }

// FillRectCommand fills a rectangle.
type FillRectCommand struct {
	X, Y, W, H float64
}

func (FillRectCommand) Type() CommandType { return CmdFillRect }
func (c FillRectCommand) Apply(dc embroider.Context2D) {
	dc.FillRect(c.X, c.Y, c.W, c.H)
}

// ClearRectCommand clears a rectangle.
type ClearRectCommand struct {
	X, Y, W, H float64
}

func (ClearRectCommand) Type() CommandType { return CmdClearRect }
func (c ClearRectCommand) Apply(dc embroider.Context2D) {
	dc.ClearRect(c.X, c.Y, c.W, c.H)
}

// DrawImageCommand composites a pixmap.
type DrawImageCommand struct {
	Image *embroider.Pixmap
	X, Y  float64
}

func (DrawImageCommand) Type() CommandType { return CmdDrawImage }
func (c DrawImageCommand) Apply(dc embroider.Context2D) {
	dc.DrawImage(c.Image, c.X, c.Y)
}
