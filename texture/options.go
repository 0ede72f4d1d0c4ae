// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import "github.com/gogpu/embroider"

// Option configures a Sink.
type Option func(*options)

type options struct {
	autoResize bool
	resample   func(p *embroider.Pixmap, w, h int) *embroider.Pixmap
}

func defaultOptions() options {
	return options{resample: embroider.Resample}
}

// WithAutoResize makes the sink follow the size of updated pixmaps instead
// of resampling them.
func WithAutoResize() Option {
	return func(o *options) { o.autoResize = true }
}

// WithFastResample resamples mismatched pixmaps bilinearly, for live
// previews where quality matters less than latency.
func WithFastResample() Option {
	return func(o *options) { o.resample = embroider.ResampleFast }
}
