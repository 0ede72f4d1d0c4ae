// Package embroider provides the raster canvas and color helpers of a
// hand-embroidery design tool.
//
// # Overview
//
// embroider draws thread stitches, composes them in image-editor style
// layers and turns them into needle plans for embroidery machines. This
// package holds the drawing surface every other package renders onto: a
// Canvas with an HTML-canvas-like immediate-mode API, implementing the
// Context2D interface.
//
// # Quick Start
//
//	import "github.com/gogpu/embroider"
//
//	// dc = drawing context convention
//	dc, _ := embroider.NewCanvas(512, 512)
//
//	dc.SetStrokeStyle(embroider.SolidHex("#c0392b"))
//	dc.SetLineWidth(3)
//	dc.BeginPath()
//	dc.MoveTo(100, 100)
//	dc.LineTo(400, 300)
//	dc.Stroke()
//
//	_ = dc.Pixmap().SavePNG("output.png")
//
// # Architecture
//
// The module is organized into:
//   - embroider: Canvas, Pixmap, colors, paints, blend modes
//   - stitch: stitch types and the renderer registry
//   - layer, effect: the layer stack, compositing and layer styles
//   - vector: editable Bézier paths
//   - session: the vector drawing mode with live preview
//   - plan, plan/dst: needle plans and the Tajima DST format
//   - design: design files and the stitchdemo command
//   - texture: uploading composed images to a GPU texture
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increasing clockwise on screen
//
// # Colors
//
// RGBA holds straight (non-premultiplied) components in [0,1]. Pixmap
// stores premultiplied 8-bit RGBA; GetPixel and SetPixel convert.
//
// # Logging
//
// Logging is silent by default. SetLogger installs an *slog.Logger used by
// every package of the module.
package embroider
