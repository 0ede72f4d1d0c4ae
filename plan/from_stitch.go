package plan

import (
	"github.com/gogpu/embroider/stitch"
)

var strategyByType = map[string]Strategy{
	stitch.TypeSatin:         Satin,
	stitch.TypeSatinRibbon:   DoubleSatin,
	stitch.TypeFill:          Fill,
	stitch.TypeLongShort:     Fill,
	stitch.TypeBrick:         Fill,
	stitch.TypeCrossStitch:   Zigzag,
	stitch.TypeHerringbone:   Zigzag,
	stitch.TypeFishbone:      Zigzag,
	stitch.TypeBlanket:       Zigzag,
	stitch.TypeFeather:       Meander,
	stitch.TypeVariegated:    Meander,
	stitch.TypeCouching:      Contour,
	stitch.TypeApplique:      Contour,
	stitch.TypeGradient:      Contour,
	stitch.TypeGlowThread:    Ripple,
	stitch.TypeMetallic:      Ripple,
	stitch.TypeChain:         Outline,
	stitch.TypeBackStitch:    Outline,
	stitch.TypeRunningStitch: Outline,
	stitch.TypeStem:          Outline,
	stitch.TypeSplit:         Outline,
}

// StrategyFor returns the plan strategy closest to a stitch type. Types
// with no line to follow, such as knots, stitch their outline.
func StrategyFor(stitchType string) Strategy {
	if s, ok := strategyByType[stitch.NormalizeType(stitchType)]; ok {
		return s
	}
	return Outline
}

// FromStitch plans a rendered stitch. The thread thickness in pixels
// becomes the band width.
func FromStitch(s stitch.Stitch, opts Options) Plan {
	opts.Strategy = StrategyFor(s.Type)
	opts = opts.withDefaults()
	if s.Thickness > 0 {
		opts.WidthMM = s.Thickness * opts.MMPerPx
	}
	if s.Density > 0 {
		opts.Density = s.Density
	}
	if s.Color != "" {
		opts.Color = s.Color
	}
	p := Generate(s.Points, opts)
	p.Info.Name = s.ID
	return p
}
