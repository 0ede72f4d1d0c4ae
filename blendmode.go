package embroider

import "strings"

// BlendMode is a layer blend mode as named in image editors ("normal",
// "multiply", "linear-burn", ...). Modes the canvas has no operation for
// map to the nearest one; the mapping is an approximation.
type BlendMode string

const (
	BlendNormal       BlendMode = "normal"
	BlendDissolve     BlendMode = "dissolve"
	BlendDarken       BlendMode = "darken"
	BlendMultiply     BlendMode = "multiply"
	BlendColorBurn    BlendMode = "color-burn"
	BlendLinearBurn   BlendMode = "linear-burn"
	BlendDarkerColor  BlendMode = "darker-color"
	BlendLighten      BlendMode = "lighten"
	BlendScreen       BlendMode = "screen"
	BlendColorDodge   BlendMode = "color-dodge"
	BlendLinearDodge  BlendMode = "linear-dodge"
	BlendLighterColor BlendMode = "lighter-color"
	BlendOverlay      BlendMode = "overlay"
	BlendSoftLight    BlendMode = "soft-light"
	BlendHardLight    BlendMode = "hard-light"
	BlendVividLight   BlendMode = "vivid-light"
	BlendLinearLight  BlendMode = "linear-light"
	BlendPinLight     BlendMode = "pin-light"
	BlendHardMix      BlendMode = "hard-mix"
	BlendDifference   BlendMode = "difference"
	BlendExclusion    BlendMode = "exclusion"
	BlendSubtract     BlendMode = "subtract"
	BlendDivide       BlendMode = "divide"
	BlendHue          BlendMode = "hue"
	BlendSaturation   BlendMode = "saturation"
	BlendColor        BlendMode = "color"
	BlendLuminosity   BlendMode = "luminosity"
)

// blendFallbacks maps editor-only modes to the nearest canvas operation.
var blendFallbacks = map[BlendMode]CompositeOp{
	BlendNormal:       OpSourceOver,
	BlendDissolve:     OpSourceOver,
	BlendLinearBurn:   OpColorBurn,
	BlendDarkerColor:  OpDarken,
	BlendLinearDodge:  OpLighter,
	BlendLighterColor: OpLighten,
	BlendVividLight:   OpHardLight,
	BlendLinearLight:  OpHardLight,
	BlendPinLight:     OpLighten,
	BlendHardMix:      OpHardLight,
	BlendSubtract:     OpDifference,
	BlendDivide:       OpColorDodge,
}

// CompositeOp returns the canvas operation used to composite with this
// mode. Canvas operation names ("source-over", "xor", ...) are accepted
// as-is; unknown modes composite as "source-over".
func (m BlendMode) CompositeOp() CompositeOp {
	name := BlendMode(strings.ToLower(strings.TrimSpace(string(m))))
	if op, ok := blendFallbacks[name]; ok {
		return op
	}
	if op, ok := ParseCompositeOp(string(name)); ok {
		return op
	}
	if name != "" {
		Logger().Warn("unknown blend mode, using source-over", "mode", string(m))
	}
	return OpSourceOver
}

// Exact reports whether the mode has a canvas operation of its own rather
// than a fallback approximation.
func (m BlendMode) Exact() bool {
	name := BlendMode(strings.ToLower(strings.TrimSpace(string(m))))
	if name == BlendNormal {
		return true
	}
	if _, ok := blendFallbacks[name]; ok {
		return false
	}
	_, ok := ParseCompositeOp(string(name))
	return ok
}
