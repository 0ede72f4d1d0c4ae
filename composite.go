package embroider

import "github.com/gogpu/embroider/internal/blend"

// CompositeOp is a canvas globalCompositeOperation.
type CompositeOp uint8

const (
	OpSourceOver      = CompositeOp(blend.SourceOver)
	OpSourceIn        = CompositeOp(blend.SourceIn)
	OpSourceOut       = CompositeOp(blend.SourceOut)
	OpSourceAtop      = CompositeOp(blend.SourceAtop)
	OpDestinationOver = CompositeOp(blend.DestinationOver)
	OpDestinationIn   = CompositeOp(blend.DestinationIn)
	OpDestinationOut  = CompositeOp(blend.DestinationOut)
	OpDestinationAtop = CompositeOp(blend.DestinationAtop)
	OpLighter         = CompositeOp(blend.Lighter)
	OpCopy            = CompositeOp(blend.Copy)
	OpXor             = CompositeOp(blend.Xor)
	OpMultiply        = CompositeOp(blend.Multiply)
	OpScreen          = CompositeOp(blend.Screen)
	OpOverlay         = CompositeOp(blend.Overlay)
	OpDarken          = CompositeOp(blend.Darken)
	OpLighten         = CompositeOp(blend.Lighten)
	OpColorDodge      = CompositeOp(blend.ColorDodge)
	OpColorBurn       = CompositeOp(blend.ColorBurn)
	OpHardLight       = CompositeOp(blend.HardLight)
	OpSoftLight       = CompositeOp(blend.SoftLight)
	OpDifference      = CompositeOp(blend.Difference)
	OpExclusion       = CompositeOp(blend.Exclusion)
	OpHue             = CompositeOp(blend.Hue)
	OpSaturation      = CompositeOp(blend.Saturation)
	OpColor           = CompositeOp(blend.Color)
	OpLuminosity      = CompositeOp(blend.Luminosity)
)

var compositeOpNames = [...]string{
	OpSourceOver:      "source-over",
	OpSourceIn:        "source-in",
	OpSourceOut:       "source-out",
	OpSourceAtop:      "source-atop",
	OpDestinationOver: "destination-over",
	OpDestinationIn:   "destination-in",
	OpDestinationOut:  "destination-out",
	OpDestinationAtop: "destination-atop",
	OpLighter:         "lighter",
	OpCopy:            "copy",
	OpXor:             "xor",
	OpMultiply:        "multiply",
	OpScreen:          "screen",
	OpOverlay:         "overlay",
	OpDarken:          "darken",
	OpLighten:         "lighten",
	OpColorDodge:      "color-dodge",
	OpColorBurn:       "color-burn",
	OpHardLight:       "hard-light",
	OpSoftLight:       "soft-light",
	OpDifference:      "difference",
	OpExclusion:       "exclusion",
	OpHue:             "hue",
	OpSaturation:      "saturation",
	OpColor:           "color",
	OpLuminosity:      "luminosity",
}

// String returns the canvas name of the operation.
func (op CompositeOp) String() string {
	if int(op) < len(compositeOpNames) {
		return compositeOpNames[op]
	}
	return "unknown"
}

// ParseCompositeOp looks up a canvas globalCompositeOperation name.
func ParseCompositeOp(name string) (CompositeOp, bool) {
	for i, n := range compositeOpNames {
		if n == name {
			return CompositeOp(i), true
		}
	}
	return OpSourceOver, false
}

func (op CompositeOp) mode() blend.Mode {
	return blend.Mode(op)
}
