package embroider

import "math"

// ImagePattern tiles a pixmap across the plane, like a CanvasPattern created
// with createPattern(image, "repeat"). Scale enlarges each tile.
type ImagePattern struct {
	Image  *Pixmap
	Scale  float64
	Offset Point
}

// NewImagePattern creates a repeating pattern at scale 1.
func NewImagePattern(img *Pixmap) *ImagePattern {
	return &ImagePattern{Image: img, Scale: 1}
}

// ColorAt implements Paint.
func (p *ImagePattern) ColorAt(x, y float64) RGBA {
	if p.Image == nil || p.Image.Width() == 0 || p.Image.Height() == 0 {
		return Transparent
	}
	s := p.Scale
	if s <= 0 {
		s = 1
	}
	w, h := p.Image.Width(), p.Image.Height()
	ix := mod(int(math.Floor((x-p.Offset.X)/s)), w)
	iy := mod(int(math.Floor((y-p.Offset.Y)/s)), h)
	return p.Image.GetPixel(ix, iy)
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
