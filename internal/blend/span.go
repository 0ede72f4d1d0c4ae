package blend

// Span composites src onto dst in place, pixel by pixel, with the source
// scaled by alpha (0-255). Both slices hold premultiplied RGBA and must have
// the same length.
func Span(m Mode, dst, src []byte, alpha byte) {
	fn := Get(m)
	bounded := Bounded(m)
	for i := 0; i+3 < len(dst) && i+3 < len(src); i += 4 {
		sr, sg, sb, sa := src[i], src[i+1], src[i+2], src[i+3]
		if alpha != 255 {
			sr, sg, sb, sa = mulDiv255(sr, alpha), mulDiv255(sg, alpha), mulDiv255(sb, alpha), mulDiv255(sa, alpha)
		}
		if sa == 0 && bounded {
			continue
		}
		dst[i], dst[i+1], dst[i+2], dst[i+3] = fn(sr, sg, sb, sa, dst[i], dst[i+1], dst[i+2], dst[i+3])
	}
}

// Scale multiplies a premultiplied pixel by a coverage/alpha byte.
func Scale(r, g, b, a, k byte) (byte, byte, byte, byte) {
	return mulDiv255(r, k), mulDiv255(g, k), mulDiv255(b, k), mulDiv255(a, k)
}
