// Package blend implements Porter-Duff compositing operators and blend modes.
//
// All blend operations work with premultiplied alpha values in the range 0-255,
// the storage format of embroider.Pixmap.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode identifies a compositing operation. The set mirrors the HTML canvas
// globalCompositeOperation values.
type Mode uint8

const (
	// Porter-Duff operators
	SourceOver      Mode = iota // S + D*(1-Sa) [default]
	SourceIn                    // S*Da
	SourceOut                   // S*(1-Da)
	SourceAtop                  // S*Da + D*(1-Sa)
	DestinationOver             // S*(1-Da) + D
	DestinationIn               // D*Sa
	DestinationOut              // D*(1-Sa)
	DestinationAtop             // S*(1-Da) + D*Sa
	Lighter                     // min(S + D, 1)
	Copy                        // S
	Xor                         // S*(1-Da) + D*(1-Sa)

	// Separable blend modes
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion

	// Non-separable blend modes
	Hue
	Saturation
	Color
	Luminosity

	modeCount
)

// Count is the number of defined modes.
const Count = int(modeCount)

// Func is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [modeCount]Func{
	SourceOver:      sourceOver,
	SourceIn:        sourceIn,
	SourceOut:       sourceOut,
	SourceAtop:      sourceAtop,
	DestinationOver: destinationOver,
	DestinationIn:   destinationIn,
	DestinationOut:  destinationOut,
	DestinationAtop: destinationAtop,
	Lighter:         lighter,
	Copy:            copySource,
	Xor:             xor,
	Multiply:        separable(multiply),
	Screen:          separable(screen),
	Overlay:         separable(overlay),
	Darken:          separable(darken),
	Lighten:         separable(lighten),
	ColorDodge:      separable(colorDodge),
	ColorBurn:       separable(colorBurn),
	HardLight:       separable(hardLight),
	SoftLight:       separable(softLight),
	Difference:      separable(difference),
	Exclusion:       separable(exclusion),
	Hue:             nonSeparable(hslHue),
	Saturation:      nonSeparable(hslSaturation),
	Color:           nonSeparable(hslColor),
	Luminosity:      nonSeparable(hslLuminosity),
}

// Get returns the blend function for the given mode.
// Unknown modes get source-over.
func Get(m Mode) Func {
	if m >= modeCount {
		return sourceOver
	}
	return funcs[m]
}

// Bounded reports whether a fully transparent source leaves the destination
// unchanged. Unbounded operators (source-in, copy, destination-in, ...) must
// be applied to every destination pixel, not only where the source drew.
func Bounded(m Mode) bool {
	switch m {
	case SourceIn, SourceOut, DestinationIn, DestinationAtop, Copy:
		return false
	}
	return true
}

func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return addClamp(sr, mulDiv255(dr, inv)),
		addClamp(sg, mulDiv255(dg, inv)),
		addClamp(sb, mulDiv255(db, inv)),
		addClamp(sa, mulDiv255(da, inv))
}

func sourceIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func sourceOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	inv := 255 - da
	return mulDiv255(sr, inv), mulDiv255(sg, inv), mulDiv255(sb, inv), mulDiv255(sa, inv)
}

func sourceAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return addClamp(mulDiv255(sr, da), mulDiv255(dr, inv)),
		addClamp(mulDiv255(sg, da), mulDiv255(dg, inv)),
		addClamp(mulDiv255(sb, da), mulDiv255(db, inv)),
		da
}

func destinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return sourceOver(dr, dg, db, da, sr, sg, sb, sa)
}

func destinationIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func destinationOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return mulDiv255(dr, inv), mulDiv255(dg, inv), mulDiv255(db, inv), mulDiv255(da, inv)
}

func destinationAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return sourceAtop(dr, dg, db, da, sr, sg, sb, sa)
}

func lighter(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

func copySource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func xor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa, invDa := 255-sa, 255-da
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}
