package filter

import (
	"math"

	"github.com/gogpu/embroider/internal/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for the given
// standard deviation. The kernel covers 3 sigma on each side, so its length
// is 2*ceil(3*sigma)+1.
//
// For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, half*2+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels caches kernels keyed by sigma quantized to 0.01.
var kernels = cache.New[int, []float32](64)

// CachedGaussianKernel returns a cached Gaussian kernel for sigma.
// Effects reuse a handful of sizes, so repeated blurs skip the exp calls.
func CachedGaussianKernel(sigma float64) []float32 {
	key := int(sigma * 100)
	return kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(float64(key) / 100)
	})
}
