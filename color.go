package embroider

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// FallbackColor is returned by AdjustBrightness for any input it cannot parse.
const FallbackColor = "#ff69b4"

// ErrInvalidHex is returned by ParseHex for malformed color strings.
var ErrInvalidHex = errors.New("embroider: invalid hex color")

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and is not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color. Values are alpha-premultiplied as the
// interface requires.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*65535 + 0.5)
	r = uint32(clamp01(c.R)*clamp01(c.A)*65535 + 0.5)
	g = uint32(clamp01(c.G)*clamp01(c.A)*65535 + 0.5)
	b = uint32(clamp01(c.B)*clamp01(c.A)*65535 + 0.5)
	return r, g, b, a
}

// NRGBA converts the color to a non-premultiplied 8-bit color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Hex formats the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// Hex creates a color from a hex string, with or without the leading '#'.
// Supports "RGB", "RRGGBB" and "RRGGBBAA". Unparseable input yields opaque
// black.
func Hex(s string) RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return RGB(0, 0, 0)
	}
	return c
}

// ParseHex strictly parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the '#' is
// optional).
func ParseHex(s string) (RGBA, error) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3:
		var v [3]uint8
		for i := range 3 {
			d, ok := hexDigit(s[i])
			if !ok {
				return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			v[i] = d * 17
		}
		return rgba8(v[0], v[1], v[2], 255), nil
	case 6, 8:
		var v [4]uint8
		v[3] = 255
		for i := 0; i < len(s); i += 2 {
			b, ok := hexByte(s[i], s[i+1])
			if !ok {
				return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			v[i/2] = b
		}
		return rgba8(v[0], v[1], v[2], v[3]), nil
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
}

// AdjustBrightness adds amount to every channel of a "#RRGGBB" color,
// clamping each channel to [0, 255]. Anything else, including a non-finite
// amount, returns FallbackColor instead of an error so callers drawing
// threads never fail on a bad palette entry.
func AdjustBrightness(hex string, amount float64) string {
	if len(hex) != 7 || hex[0] != '#' || math.IsNaN(amount) || math.IsInf(amount, 0) {
		Logger().Warn("adjust brightness: malformed input, using fallback",
			"color", hex, "amount", amount)
		return FallbackColor
	}
	var ch [3]float64
	for i := range 3 {
		b, ok := hexByte(hex[1+2*i], hex[2+2*i])
		if !ok {
			Logger().Warn("adjust brightness: non-hex digits, using fallback", "color", hex)
			return FallbackColor
		}
		ch[i] = math.Round(math.Max(0, math.Min(255, float64(b)+amount)))
	}
	return fmt.Sprintf("#%02x%02x%02x", int(ch[0]), int(ch[1]), int(ch[2]))
}

// HexToRGB converts "#RRGGBB" (or "RRGGBB") to an "r,g,b" triplet as used in
// rgba() color strings. Malformed input yields "0,0,0".
func HexToRGB(hex string) string {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return "0,0,0"
	}
	var ch [3]uint8
	for i := range 3 {
		b, ok := hexByte(hex[2*i], hex[2*i+1])
		if !ok {
			return "0,0,0"
		}
		ch[i] = b
	}
	return strconv.Itoa(int(ch[0])) + "," + strconv.Itoa(int(ch[1])) + "," + strconv.Itoa(int(ch[2]))
}

// RGBFromTriplet parses the "r,g,b" form produced by HexToRGB.
func RGBFromTriplet(s string, alpha float64) RGBA {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return RGBA{A: alpha}
	}
	return RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: alpha}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, ok1 := hexDigit(hi)
	l, ok2 := hexDigit(lo)
	return h<<4 | l, ok1 && ok2
}

func rgba8(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

func to8(x float64) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)
