package blend

// Non-separable blend modes (Hue, Saturation, Color, Luminosity) per
// W3C Compositing and Blending Level 1, section 5.9. They operate on the
// whole RGB triplet rather than on individual channels.

type rgb struct{ r, g, b float32 }

type tripletFunc func(cb, cs rgb) rgb

func nonSeparable(fn tripletFunc) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}
		as, ab := float32(sa)/255, float32(da)/255
		src := rgb{float32(sr) / 255, float32(sg) / 255, float32(sb) / 255}
		dst := rgb{float32(dr) / 255, float32(dg) / 255, float32(db) / 255}
		res := fn(rgb{dst.r / ab, dst.g / ab, dst.b / ab}, rgb{src.r / as, src.g / as, src.b / as})
		mix := func(cs, cb, b float32) byte {
			return toByte(cs*(1-ab) + cb*(1-as) + as*ab*b)
		}
		return mix(src.r, dst.r, res.r),
			mix(src.g, dst.g, res.g),
			mix(src.b, dst.b, res.b),
			toByte(as + ab*(1-as))
	}
}

func hslHue(cb, cs rgb) rgb { return setLum(setSat(cs, sat(cb)), lum(cb)) }

func hslSaturation(cb, cs rgb) rgb { return setLum(setSat(cb, sat(cs)), lum(cb)) }

func hslColor(cb, cs rgb) rgb { return setLum(cs, lum(cb)) }

func hslLuminosity(cb, cs rgb) rgb { return setLum(cb, lum(cs)) }

// lum returns BT.601 luminance.
func lum(c rgb) float32 { return 0.3*c.r + 0.59*c.g + 0.11*c.b }

func sat(c rgb) float32 { return max(c.r, c.g, c.b) - min(c.r, c.g, c.b) }

func clipColor(c rgb) rgb {
	l := lum(c)
	n := min(c.r, c.g, c.b)
	x := max(c.r, c.g, c.b)
	if n < 0 {
		c = rgb{l + (c.r-l)*l/(l-n), l + (c.g-l)*l/(l-n), l + (c.b-l)*l/(l-n)}
	}
	if x > 1 {
		c = rgb{l + (c.r-l)*(1-l)/(x-l), l + (c.g-l)*(1-l)/(x-l), l + (c.b-l)*(1-l)/(x-l)}
	}
	return c
}

func setLum(c rgb, l float32) rgb {
	d := l - lum(c)
	return clipColor(rgb{c.r + d, c.g + d, c.b + d})
}

func setSat(c rgb, s float32) rgb {
	p := [3]*float32{&c.r, &c.g, &c.b}
	// order p as min, mid, max
	if *p[0] > *p[1] {
		p[0], p[1] = p[1], p[0]
	}
	if *p[1] > *p[2] {
		p[1], p[2] = p[2], p[1]
	}
	if *p[0] > *p[1] {
		p[0], p[1] = p[1], p[0]
	}
	if *p[2] > *p[0] {
		*p[1] = (*p[1] - *p[0]) * s / (*p[2] - *p[0])
		*p[2] = s
	} else {
		*p[1], *p[2] = 0, 0
	}
	*p[0] = 0
	return c
}
