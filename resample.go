package embroider

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resample returns p scaled to width x height. Downscaling a canvas that
// was drawn at a multiple of its display size is how the compositor
// super-samples; Catmull-Rom keeps thread edges crisp without ringing on
// flat areas. Non-positive sizes return an empty pixmap.
func Resample(p *Pixmap, width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		return NewPixmap(0, 0)
	}
	if p.Width() == width && p.Height() == height {
		return p.Clone()
	}
	out := NewPixmap(width, height)
	if p.Width() == 0 || p.Height() == 0 {
		return out
	}
	dst := &image.RGBA{Pix: out.data, Stride: out.Stride(), Rect: out.Bounds()}
	xdraw.CatmullRom.Scale(dst, dst.Rect, p.ToImage(), p.Bounds(), xdraw.Src, nil)
	return out
}

// ResampleFast is Resample with bilinear filtering, for previews.
func ResampleFast(p *Pixmap, width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		return NewPixmap(0, 0)
	}
	out := NewPixmap(width, height)
	if p.Width() == 0 || p.Height() == 0 {
		return out
	}
	dst := &image.RGBA{Pix: out.data, Stride: out.Stride(), Rect: out.Bounds()}
	xdraw.BiLinear.Scale(dst, dst.Rect, p.ToImage(), p.Bounds(), xdraw.Src, nil)
	return out
}
