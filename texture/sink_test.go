// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/embroider"
)

type fixedComposer struct{ pm *embroider.Pixmap }

func (f fixedComposer) ComposeDisplay() *embroider.Pixmap { return f.pm }

func solid(w, h int, c embroider.RGBA) *embroider.Pixmap {
	pm := embroider.NewPixmap(w, h)
	pm.Clear(c)
	return pm
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{"valid", 64, 32, nil},
		{"zero width", 0, 32, ErrInvalidDimensions},
		{"negative height", 64, -1, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (s.Width() != tt.w || s.Height() != tt.h || s.IsDirty()) {
				t.Errorf("sink = %dx%d dirty=%v", s.Width(), s.Height(), s.IsDirty())
			}
		})
	}
}

func TestFormat(t *testing.T) {
	s, _ := New(4, 4)
	if s.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v", s.Format())
	}
}

func TestFlushLifecycle(t *testing.T) {
	s, _ := New(8, 8)
	if _, err := s.Flush(); !errors.Is(err, ErrNoPixmap) {
		t.Fatalf("Flush before Update err = %v", err)
	}
	if err := s.Update(solid(8, 8, embroider.Red)); err != nil {
		t.Fatal(err)
	}
	if !s.IsDirty() {
		t.Error("not dirty after Update")
	}
	tex, err := s.Flush()
	if err != nil {
		t.Fatal(err)
	}
	pending, ok := tex.(*pendingTexture)
	if !ok {
		t.Fatalf("texture = %T, want *pendingTexture", tex)
	}
	if pending.width != 8 || len(pending.data) != 8*8*4 || pending.data[0] != 255 {
		t.Errorf("pending = %dx%d, %d bytes, first byte %d", pending.width, pending.height, len(pending.data), pending.data[0])
	}
	if s.IsDirty() {
		t.Error("dirty after Flush")
	}
	again, _ := s.Flush()
	if again != tex {
		t.Error("clean Flush returned a different texture")
	}

	if err := s.UpdateFrom(fixedComposer{solid(8, 8, embroider.Blue)}); err != nil {
		t.Fatal(err)
	}
	s.Flush()
	if p := s.Texture().(*pendingTexture); p.data[2] != 255 || p.data[0] != 0 {
		t.Errorf("pending not refreshed: % x", p.data[:4])
	}
}

func TestUpdateResamples(t *testing.T) {
	s, _ := New(4, 4)
	if err := s.Update(solid(16, 16, embroider.Green)); err != nil {
		t.Fatal(err)
	}
	tex, _ := s.Flush()
	if p := tex.(*pendingTexture); p.width != 4 || len(p.data) != 4*4*4 {
		t.Errorf("resampled pending = %dx%d, %d bytes", p.width, p.height, len(p.data))
	}
}

func TestAutoResize(t *testing.T) {
	s, _ := New(4, 4, WithAutoResize())
	_ = s.Update(solid(4, 4, embroider.Green))
	first, _ := s.Flush()
	_ = s.Update(solid(10, 6, embroider.Green))
	if s.Width() != 10 || s.Height() != 6 {
		t.Fatalf("size = %dx%d, want 10x6", s.Width(), s.Height())
	}
	second, _ := s.Flush()
	if second == first {
		t.Error("texture not recreated after resize")
	}
	if s.oldTexture != first {
		t.Error("old texture not kept for deferred destruction")
	}
	if p := second.(*pendingTexture); p.width != 10 || p.height != 6 {
		t.Errorf("pending = %dx%d", p.width, p.height)
	}
}

func TestClosed(t *testing.T) {
	s, _ := New(4, 4)
	_ = s.Update(solid(4, 4, embroider.White))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := s.Update(solid(4, 4, embroider.White)); !errors.Is(err, ErrSinkClosed) {
		t.Errorf("Update err = %v", err)
	}
	if _, err := s.Flush(); !errors.Is(err, ErrSinkClosed) {
		t.Errorf("Flush err = %v", err)
	}
	if err := s.RenderTo(nil); !errors.Is(err, ErrSinkClosed) {
		t.Errorf("RenderTo err = %v", err)
	}
}

func TestRenderToNilDrawer(t *testing.T) {
	s, _ := New(4, 4)
	_ = s.Update(solid(4, 4, embroider.White))
	if err := s.RenderTo(nil); !errors.Is(err, ErrInvalidDrawContext) {
		t.Errorf("err = %v, want ErrInvalidDrawContext", err)
	}
}

func TestUpdateEmpty(t *testing.T) {
	s, _ := New(4, 4)
	if err := s.Update(nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("err = %v", err)
	}
}
