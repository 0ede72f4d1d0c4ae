package layer

import "github.com/gogpu/embroider"

// Compose draws every visible layer, bottom to top, into the shared result
// canvas and returns its pixmap. The returned pixmap is overwritten by the
// next Compose; Clone it to keep it.
func (s *Store) Compose() *embroider.Pixmap {
	s.result.Clear()
	for _, l := range s.Layers() {
		if !l.Visible {
			continue
		}
		s.drawLayer(s.result, l)
	}
	s.emit(EventComposed, "")
	return s.result.Pixmap()
}

// ComposeScaled composes and resamples the result to width x height.
func (s *Store) ComposeScaled(width, height int) *embroider.Pixmap {
	return embroider.Resample(s.Compose(), width, height)
}

// ComposeDisplay composes and downsamples to the display size.
func (s *Store) ComposeDisplay() *embroider.Pixmap {
	if s.scale == 1 {
		return s.Compose()
	}
	return s.ComposeScaled(s.width, s.height)
}

// drawLayer composites one layer onto dst with its opacity and blend mode
// after applying its effects and mask. The mask is applied to an isolated
// copy of the layer so it never erases what dst already holds.
func (s *Store) drawLayer(dst *embroider.Canvas, l *Layer) {
	src := l.Canvas.Pixmap()
	if len(l.Effects) > 0 {
		src = s.effects.RenderEffects(src, l.Effects)
	}
	if l.Mask != nil {
		iso := embroider.MustNewCanvas(src.Width(), src.Height())
		iso.DrawImage(src, 0, 0)
		iso.SetCompositeOp(embroider.OpDestinationIn)
		iso.DrawImage(l.Mask.gate(), 0, 0)
		src = iso.Pixmap()
	}

	dst.Save()
	dst.SetGlobalAlpha(l.Opacity)
	dst.SetCompositeOp(l.BlendMode.CompositeOp())
	dst.DrawImage(src, 0, 0)
	dst.Restore()
}
