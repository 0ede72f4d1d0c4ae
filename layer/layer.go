// Package layer keeps an ordered stack of raster layers and composites them
// into a single image, the way an image editor's layer panel does.
//
// Each layer owns a canvas. Layers are drawn in ascending Order; each one
// is composited with its opacity and blend mode after its effects and mask
// are applied:
//
//	s, _ := layer.NewStore(1024, 1024)
//	bg := s.Create("background")
//	_ = s.Draw(bg.ID, func(dc embroider.Context2D) { dc.FillRect(0, 0, 1024, 1024) })
//	thread := s.Create("thread")
//	_ = s.SetBlendMode(thread.ID, embroider.BlendMultiply)
//	out := s.Compose()
package layer

import (
	"errors"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/effect"
)

var (
	// ErrLayerNotFound is returned for an unknown layer id.
	ErrLayerNotFound = errors.New("layer: layer not found")
	// ErrLayerLocked is returned when mutating a locked layer.
	ErrLayerLocked = errors.New("layer: layer is locked")
	// ErrEffectNotFound is returned for an unknown effect id.
	ErrEffectNotFound = errors.New("layer: effect not found")
	// ErrNoLayerBelow is returned by MergeDown on the bottom layer.
	ErrNoLayerBelow = errors.New("layer: no layer below")
	// ErrMaskSize is returned when a mask does not match the store size.
	ErrMaskSize = errors.New("layer: mask size does not match the store")
)

// Layer is one raster layer. Its Canvas is owned by the layer and released
// when the layer is deleted, merged or flattened.
type Layer struct {
	ID        string
	Name      string
	Canvas    *embroider.Canvas
	Opacity   float64
	BlendMode embroider.BlendMode
	Visible   bool
	Locked    bool
	Effects   []effect.Effect
	Mask      *Mask
	Order     int
}

// Mask gates which pixels of a layer show. Coverage comes from the alpha
// of the mask canvas.
type Mask struct {
	Canvas *embroider.Canvas
	// Inverted hides where the mask is opaque instead.
	Inverted bool
	// Density scales the strength of the mask: 1 hides fully, 0 not at all.
	Density float64
	// Feather softens the mask edge by this many pixels.
	Feather float64
}

// NewMask returns a full-density mask over c.
func NewMask(c *embroider.Canvas) *Mask {
	return &Mask{Canvas: c, Density: 1}
}

// gate builds the pixmap composited with destination-in: opaque where the
// layer shows.
func (m *Mask) gate() *embroider.Pixmap {
	src := m.Canvas.Pixmap()
	w, h := src.Width(), src.Height()
	g := embroider.NewPixmap(w, h)
	density := clamp01(m.Density)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := src.GetPixel(x, y).A
			if m.Inverted {
				a = 1 - a
			}
			g.SetPixel(x, y, embroider.White.WithAlpha(1-density*(1-a)))
		}
	}
	if m.Feather <= 0 {
		return g
	}
	c := embroider.MustNewCanvas(w, h)
	c.SetFilterBlur(m.Feather)
	c.DrawImage(g, 0, 0)
	return c.Pixmap()
}

// clone deep-copies the mask canvas.
func (m *Mask) clone() *Mask {
	if m == nil {
		return nil
	}
	cp := *m
	pm := m.Canvas.Pixmap().Clone()
	cp.Canvas = embroider.MustNewCanvas(pm.Width(), pm.Height(), embroider.WithPixmap(pm))
	return &cp
}

// EventType identifies a layer store change.
type EventType int

const (
	EventCreated EventType = iota
	EventDeleted
	EventMoved
	EventChanged
	EventDrawn
	EventMerged
	EventFlattened
	EventComposed
)

var eventTypeNames = [...]string{
	EventCreated:   "created",
	EventDeleted:   "deleted",
	EventMoved:     "moved",
	EventChanged:   "changed",
	EventDrawn:     "drawn",
	EventMerged:    "merged",
	EventFlattened: "flattened",
	EventComposed:  "composed",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event describes a store change. LayerID is empty for store-wide events.
type Event struct {
	Type    EventType
	LayerID string
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
