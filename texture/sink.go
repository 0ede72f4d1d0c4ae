// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture hands composed embroidery images to a GPU renderer as a
// texture, for the 3D garment preview.
//
// A Sink holds the latest composed pixmap and uploads it lazily: Update
// marks it dirty, and the next Flush or RenderTo creates or updates the
// GPU texture. The texture is created through the host's
// gpucontext.TextureCreator the first time the sink is drawn:
//
//	sink, _ := texture.New(1024, 1024)
//	_ = sink.Update(store.ComposeDisplay())
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = sink.RenderTo(dc.AsTextureDrawer())
//	})
package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/embroider"
)

var (
	// ErrSinkClosed is returned when a closed sink is used.
	ErrSinkClosed = errors.New("texture: sink is closed")
	// ErrInvalidDimensions is returned for non-positive sizes.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")
	// ErrNoPixmap is returned when flushing before the first Update.
	ErrNoPixmap = errors.New("texture: no pixmap to upload")
	// ErrInvalidDrawContext is returned for a nil drawer or a texture that
	// does not implement gpucontext.Texture.
	ErrInvalidDrawContext = errors.New("texture: dc must implement gpucontext.TextureDrawer")
	// ErrInvalidRenderer is returned when the drawer has no texture creator.
	ErrInvalidRenderer = errors.New("texture: drawer has no gpucontext.TextureCreator")
)

// Composer produces the image a sink uploads. layer.Store implements it.
type Composer interface {
	ComposeDisplay() *embroider.Pixmap
}

type textureDestroyer interface {
	Destroy()
}

// Sink uploads composed pixmaps to a GPU texture.
//
// Sink is NOT safe for concurrent use.
type Sink struct {
	pixmap      *embroider.Pixmap
	texture     any // pendingTexture until the first RenderTo
	oldTexture  any // replaced texture awaiting destruction
	dirty       bool
	sizeChanged bool
	width       int
	height      int
	opts        options
	closed      bool
}

// New creates a sink for width x height images.
func New(width, height int, opts ...Option) (*Sink, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Sink{width: width, height: height, opts: o}, nil
}

// Width returns the texture width.
func (s *Sink) Width() int { return s.width }

// Height returns the texture height.
func (s *Sink) Height() int { return s.height }

// Format is the pixel format of the uploaded data: premultiplied RGBA8.
func (s *Sink) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// IsDirty reports whether the next Flush uploads.
func (s *Sink) IsDirty() bool { return s.dirty }

// Update replaces the image to upload. A pixmap of a different size is
// resampled to the sink size unless WithAutoResize is set, in which case
// the sink adopts its size and recreates the texture.
func (s *Sink) Update(pm *embroider.Pixmap) error {
	if s.closed {
		return ErrSinkClosed
	}
	if pm == nil || pm.IsEmpty() {
		return fmt.Errorf("%w: empty pixmap", ErrInvalidDimensions)
	}
	if pm.Width() != s.width || pm.Height() != s.height {
		if s.opts.autoResize {
			embroider.Logger().Debug("texture: resize", "from_w", s.width, "from_h", s.height,
				"to_w", pm.Width(), "to_h", pm.Height())
			s.width, s.height = pm.Width(), pm.Height()
			s.sizeChanged = true
		} else {
			pm = s.opts.resample(pm, s.width, s.height)
		}
	}
	s.pixmap = pm
	s.dirty = true
	return nil
}

// UpdateFrom composes c and uploads the result on the next Flush.
func (s *Sink) UpdateFrom(c Composer) error {
	if s.closed {
		return ErrSinkClosed
	}
	return s.Update(c.ComposeDisplay())
}

// Flush uploads the pixmap if dirty and returns the texture. Before the
// first RenderTo the returned value is a placeholder: the real texture can
// only be created once a TextureCreator is available.
func (s *Sink) Flush() (any, error) {
	if s.closed {
		return nil, ErrSinkClosed
	}
	if s.sizeChanged {
		if s.texture != nil {
			// the old texture may still be in use by in-flight GPU work
			destroy(s.oldTexture)
			s.oldTexture = s.texture
			s.texture = nil
		}
		s.sizeChanged = false
	}
	if !s.dirty && s.texture != nil {
		return s.texture, nil
	}
	if s.pixmap == nil {
		return nil, ErrNoPixmap
	}
	data := s.pixmap.Data()

	if s.texture == nil {
		s.texture = &pendingTexture{width: s.width, height: s.height, data: data}
		s.dirty = false
		return s.texture, nil
	}
	switch tex := s.texture.(type) {
	case *pendingTexture:
		tex.width, tex.height, tex.data = s.width, s.height, data
	case gpucontext.TextureUpdater:
		if err := tex.UpdateData(data); err != nil {
			return nil, fmt.Errorf("texture: update failed: %w", err)
		}
	}
	s.dirty = false
	return s.texture, nil
}

// Texture returns the current texture without flushing.
func (s *Sink) Texture() any { return s.texture }

// RenderTo flushes and draws the texture at (0, 0).
func (s *Sink) RenderTo(dc gpucontext.TextureDrawer) error {
	return s.RenderToPosition(dc, 0, 0)
}

// RenderToPosition flushes and draws the texture at (x, y), creating the
// GPU texture on first use.
func (s *Sink) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if s.closed {
		return ErrSinkClosed
	}
	if dc == nil {
		return ErrInvalidDrawContext
	}
	tex, err := s.Flush()
	if err != nil {
		return err
	}
	if pending, ok := tex.(*pendingTexture); ok {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("texture: NewTextureFromRGBA failed: %w", err)
		}
		// pixmap data is premultiplied
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		s.texture = realTex
		tex = realTex
		destroy(s.oldTexture)
		s.oldTexture = nil
		embroider.Logger().Debug("texture: created", "w", pending.width, "h", pending.height)
	}
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Close destroys the textures. It is idempotent.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	destroy(s.oldTexture)
	destroy(s.texture)
	s.oldTexture, s.texture, s.pixmap = nil, nil, nil
	return nil
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// pendingTexture holds the data for a texture that cannot be created until
// a TextureCreator is available.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
