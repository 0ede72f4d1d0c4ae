package filter

// Colorize replaces the color of every pixel with (r, g, b) while keeping
// its coverage, scaled by opacity a (0-255). The result is premultiplied.
func Colorize(pix []byte, r, g, b, a byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		cov := uint16(pix[i+3]) * uint16(a) / 255
		pix[i] = byte(uint16(r) * cov / 255)
		pix[i+1] = byte(uint16(g) * cov / 255)
		pix[i+2] = byte(uint16(b) * cov / 255)
		pix[i+3] = byte(cov)
	}
}

// InvertAlpha turns coverage into its complement, so the area outside a
// shape becomes opaque. Color channels are cleared; call Colorize after.
func InvertAlpha(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		pix[i+3] = 255 - pix[i+3]
	}
}

// ScaleAlpha multiplies every pixel (color and alpha) by k/255.
func ScaleAlpha(pix []byte, k byte) {
	if k == 255 {
		return
	}
	for i := range pix {
		pix[i] = byte((uint16(pix[i])*uint16(k) + 127) / 255)
	}
}

// Shift returns a copy of pix translated by (dx, dy) pixels. Pixels shifted
// in from outside are transparent.
func Shift(pix []byte, width, height, dx, dy int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < height; y++ {
		sy := y - dy
		if sy < 0 || sy >= height {
			continue
		}
		for x := 0; x < width; x++ {
			sx := x - dx
			if sx < 0 || sx >= width {
				continue
			}
			copy(out[(y*width+x)*4:(y*width+x)*4+4], pix[(sy*width+sx)*4:(sy*width+sx)*4+4])
		}
	}
	return out
}
