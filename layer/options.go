package layer

import "github.com/gogpu/embroider/effect"

// StoreOption configures a Store during creation.
type StoreOption func(*storeOptions)

type storeOptions struct {
	superSample int
	effects     *effect.Renderer
}

func defaultStoreOptions() storeOptions {
	return storeOptions{superSample: 1}
}

// WithSuperSample allocates layer canvases at factor times the display
// size. Compose returns the full-resolution image; ComposeDisplay
// downsamples it to the display size. Factors below 1 are ignored.
func WithSuperSample(factor int) StoreOption {
	return func(o *storeOptions) {
		if factor >= 1 {
			o.superSample = factor
		}
	}
}

// WithEffectRenderer sets the renderer used for layer effects.
func WithEffectRenderer(r *effect.Renderer) StoreOption {
	return func(o *storeOptions) {
		if r != nil {
			o.effects = r
		}
	}
}
