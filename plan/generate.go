package plan

import (
	"math"

	"github.com/gogpu/embroider"
)

// Strategy selects how stitches are laid around the drawn line.
type Strategy string

const (
	// Outline stitches along the line itself.
	Outline Strategy = "outline"
	// Satin alternates sides of the line, narrowing on each extra pass.
	Satin Strategy = "satin"
	// Zigzag alternates sides at a fixed half-width amplitude.
	Zigzag Strategy = "zigzag"
	// DoubleSatin lays two rails, a quarter width left and half width right.
	DoubleSatin Strategy = "double_satin"
	// Meander follows a sine wave around the line.
	Meander Strategy = "meander"
	// Contour stitches every other band across the width.
	Contour Strategy = "contour"
	// Ripple offsets to one side with a pulsing amplitude.
	Ripple Strategy = "ripple"
	// Fill stitches every band across the width.
	Fill Strategy = "fill"
)

// Options control plan generation. Zero fields take the defaults listed.
type Options struct {
	Strategy    Strategy // outline
	MMPerPx     float64  // 0.26
	StitchLenMM float64  // 2.5
	WidthMM     float64  // 2.0
	Density     float64  // 1.0
	Passes      int      // 1
	Color       string   // "#000000"
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:    Outline,
		MMPerPx:     0.26,
		StitchLenMM: 2.5,
		WidthMM:     2.0,
		Density:     1.0,
		Passes:      1,
		Color:       "#000000",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Strategy == "" {
		o.Strategy = d.Strategy
	}
	if o.MMPerPx <= 0 {
		o.MMPerPx = d.MMPerPx
	}
	if o.StitchLenMM <= 0 {
		o.StitchLenMM = d.StitchLenMM
	}
	if o.WidthMM <= 0 {
		o.WidthMM = d.WidthMM
	}
	if o.Density <= 0 {
		o.Density = d.Density
	}
	if o.Passes <= 0 {
		o.Passes = d.Passes
	}
	if o.Color == "" {
		o.Color = d.Color
	}
	return o
}

// StitchLenPx is the stitch spacing in pixels: the stitch length scaled
// by the density, which is floored at 0.25.
func (o Options) StitchLenPx() float64 {
	o = o.withDefaults()
	return (o.StitchLenMM / o.MMPerPx) / math.Max(0.25, o.Density)
}

// WidthPx is the stitch band width in pixels.
func (o Options) WidthPx() float64 {
	o = o.withDefaults()
	return o.WidthMM / o.MMPerPx
}

// Generate builds a plan for pts. Fewer than two points give an empty
// plan. Otherwise the plan opens with a color change marker at the first
// resampled point, followed by the strategy's stitches. Points that all
// coincide give the marker and one stitch. Unknown strategies generate a
// fill.
func Generate(pts []embroider.Point, opts Options) Plan {
	opts = opts.withDefaults()
	p := Plan{Info: Info{
		Strategy:    opts.Strategy,
		MMPerPx:     opts.MMPerPx,
		StitchLenMM: opts.StitchLenMM,
		WidthMM:     opts.WidthMM,
		Passes:      opts.Passes,
	}}
	if len(pts) < 2 {
		return p
	}
	step := math.Max(1, opts.StitchLenPx())
	width := opts.WidthPx()
	base := Resample(pts, step)

	p.Append(Point{X: base[0].X, Y: base[0].Y, Kind: KindColorChange, Color: opts.Color})
	if len(base) < 2 {
		// all points coincide: a single tack stitch
		p.Append(Point{X: base[0].X, Y: base[0].Y, Kind: KindStitch})
		return p
	}
	at := func(b, n embroider.Point, off float64) {
		q := b.Add(n.Mul(off))
		p.Append(Point{X: q.X, Y: q.Y, Kind: KindStitch})
	}

	switch opts.Strategy {
	case Outline:
		for _, b := range base {
			at(b, embroider.Point{}, 0)
		}
	case Satin:
		side := 1.0
		for i, b := range base {
			n := normal(base, i)
			for pass := range opts.Passes {
				off := width * (1 - float64(pass)/float64(opts.Passes)) * 0.5
				at(b, n, side*off)
			}
			side = -side
		}
	case Zigzag:
		amp := width * 0.5
		for i, b := range base {
			at(b, normal(base, i), amp)
			amp = -amp
		}
	case DoubleSatin:
		for i, b := range base {
			n := normal(base, i)
			at(b, n, width*0.25)
			at(b, n, -width*0.5)
		}
	case Meander:
		freq := math.Max(0.2, 2/math.Max(1, step))
		phase := 0.0
		for i, b := range base {
			phase += freq
			at(b, normal(base, i), math.Sin(phase)*width*0.5)
		}
	case Contour:
		nb := bands(width, step)
		for i, b := range base {
			n := normal(base, i)
			for bi := -nb; bi <= nb; bi += 2 {
				at(b, n, float64(bi)/float64(nb)*width*0.5)
			}
		}
	case Ripple:
		phase := 0.0
		for i, b := range base {
			phase += 0.5
			at(b, normal(base, i), (0.5+0.5*math.Sin(phase))*width*0.5)
		}
	default:
		nb := bands(width, step)
		for i, b := range base {
			n := normal(base, i)
			for bi := -nb; bi <= nb; bi++ {
				at(b, n, float64(bi)/float64(nb)*width*0.5)
			}
		}
	}
	embroider.Logger().Debug("plan: generated", "strategy", string(opts.Strategy),
		"base", len(base), "stitches", p.Info.StitchCount)
	return p
}
