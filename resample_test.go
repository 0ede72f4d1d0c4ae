package embroider

import "testing"

func TestResample(t *testing.T) {
	src := NewPixmap(8, 8)
	src.Clear(Red)

	tests := []struct {
		name string
		fn   func(*Pixmap, int, int) *Pixmap
	}{
		{"catmull-rom", Resample},
		{"bilinear", ResampleFast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down := tt.fn(src, 2, 2)
			if down.Width() != 2 || down.Height() != 2 {
				t.Fatalf("size = %dx%d", down.Width(), down.Height())
			}
			if got := down.GetPixel(1, 1).NRGBA(); got.R != 255 || got.A != 255 {
				t.Errorf("downscaled flat color = %v, want opaque red", got)
			}
			up := tt.fn(src, 16, 4)
			if up.Width() != 16 || up.Height() != 4 {
				t.Fatalf("size = %dx%d", up.Width(), up.Height())
			}
			if empty := tt.fn(src, 0, 3); empty.Width() != 0 {
				t.Error("non-positive size should return an empty pixmap")
			}
		})
	}
}

func TestResampleSameSizeCopies(t *testing.T) {
	src := NewPixmap(3, 3)
	out := Resample(src, 3, 3)
	out.SetPixel(0, 0, Red)
	if !src.IsEmpty() {
		t.Error("Resample at the same size must not alias the source")
	}
}
