// Package filter provides pixel filters used by the canvas and the layer
// effects renderer: separable Gaussian blur over premultiplied RGBA buffers
// and alpha-channel helpers for shadows and glows.
package filter

import "sync"

// Blur applies a separable Gaussian blur with standard deviation sigma to a
// premultiplied RGBA buffer in place. Pixels outside the buffer count as
// transparent, so shapes fade out at the edges instead of smearing.
//
// Complexity is O(w*h*k) with k the kernel length, instead of O(w*h*k²).
func Blur(pix []byte, width, height int, sigma float64) {
	if sigma <= 0 || width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return
	}
	kernel := CachedGaussianKernel(sigma)
	temp := getTempBuffer(width * height * 4)
	defer putTempBuffer(temp)

	blurHorizontal(pix, temp, width, height, kernel)
	blurVertical(temp, pix, width, height, kernel)
}

// blurHorizontal convolves each row of src into temp.
func blurHorizontal(src []byte, temp []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, w := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= width {
					continue
				}
				i := (row + sx) * 4
				r += float32(src[i]) * w
				g += float32(src[i+1]) * w
				b += float32(src[i+2]) * w
				a += float32(src[i+3]) * w
			}
			o := (row + x) * 4
			temp[o], temp[o+1], temp[o+2], temp[o+3] = r, g, b, a
		}
	}
}

// blurVertical convolves each column of temp into dst.
func blurVertical(temp []float32, dst []byte, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, w := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= height {
					continue
				}
				i := (sy*width + x) * 4
				r += temp[i] * w
				g += temp[i+1] * w
				b += temp[i+2] * w
				a += temp[i+3] * w
			}
			o := (y*width + x) * 4
			dst[o] = clampUint8(r)
			dst[o+1] = clampUint8(g)
			dst[o+2] = clampUint8(b)
			dst[o+3] = clampUint8(a)
			// keep premultiplied invariant after rounding
			if dst[o] > dst[o+3] {
				dst[o] = dst[o+3]
			}
			if dst[o+1] > dst[o+3] {
				dst[o+1] = dst[o+3]
			}
			if dst[o+2] > dst[o+3] {
				dst[o+2] = dst[o+3]
			}
		}
	}
}

// floatBuffer wraps a slice for sync.Pool.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

func getTempBuffer(size int) []float32 {
	fb := tempBufferPool.Get().(*floatBuffer)
	if len(fb.data) < size {
		tempBufferPool.Put(fb)
		return make([]float32, size)
	}
	return fb.data[:size]
}

func putTempBuffer(buf []float32) {
	if cap(buf) <= 4096*4096*4 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
