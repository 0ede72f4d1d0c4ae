// Package effect renders layer styles: shadows, glows, bevel and emboss,
// strokes and color, gradient and pattern overlays.
//
// Every effect follows the same recipe: draw the layer into a scratch
// canvas, transform it (offset, blur, recolor), then composite the scratch
// canvas onto the result with an operation specific to the effect.
package effect

import "github.com/gogpu/embroider"

// Kind tags the settings variant of an effect.
type Kind string

const (
	KindDropShadow      Kind = "drop-shadow"
	KindInnerShadow     Kind = "inner-shadow"
	KindOuterGlow       Kind = "outer-glow"
	KindInnerGlow       Kind = "inner-glow"
	KindBevelEmboss     Kind = "bevel-emboss"
	KindStroke          Kind = "stroke"
	KindColorOverlay    Kind = "color-overlay"
	KindGradientOverlay Kind = "gradient-overlay"
	KindPatternOverlay  Kind = "pattern-overlay"
)

// Settings is implemented by the settings record of each effect kind.
type Settings interface {
	Kind() Kind
}

// Effect is one entry of a layer's effect stack. Disabled effects are kept
// but skipped when rendering.
type Effect struct {
	ID       string
	Enabled  bool
	Settings Settings
}

// New returns an enabled effect.
func New(id string, s Settings) Effect {
	return Effect{ID: id, Enabled: true, Settings: s}
}

// Kind returns the kind of the effect's settings, or "" if it has none.
func (e Effect) Kind() Kind {
	if e.Settings == nil {
		return ""
	}
	return e.Settings.Kind()
}

// DropShadow casts a blurred copy of the layer behind it.
// Angle is the light direction in degrees; the shadow falls opposite.
type DropShadow struct {
	Color    string  `json:"color" toml:"color" yaml:"color"`
	Opacity  float64 `json:"opacity" toml:"opacity" yaml:"opacity"`
	Angle    float64 `json:"angle" toml:"angle" yaml:"angle"`
	Distance float64 `json:"distance" toml:"distance" yaml:"distance"`
	Spread   float64 `json:"spread" toml:"spread" yaml:"spread"`
	Size     float64 `json:"size" toml:"size" yaml:"size"`
}

// InnerShadow darkens the inside edge of the layer facing away from the
// light.
type InnerShadow struct {
	Color    string  `json:"color" toml:"color" yaml:"color"`
	Opacity  float64 `json:"opacity" toml:"opacity" yaml:"opacity"`
	Angle    float64 `json:"angle" toml:"angle" yaml:"angle"`
	Distance float64 `json:"distance" toml:"distance" yaml:"distance"`
	Choke    float64 `json:"choke" toml:"choke" yaml:"choke"`
	Size     float64 `json:"size" toml:"size" yaml:"size"`
}

// OuterGlow adds a soft halo around the layer.
type OuterGlow struct {
	Color   string  `json:"color" toml:"color" yaml:"color"`
	Opacity float64 `json:"opacity" toml:"opacity" yaml:"opacity"`
	Spread  float64 `json:"spread" toml:"spread" yaml:"spread"`
	Size    float64 `json:"size" toml:"size" yaml:"size"`
}

// InnerGlow lights the inside edge of the layer.
type InnerGlow struct {
	Color   string  `json:"color" toml:"color" yaml:"color"`
	Opacity float64 `json:"opacity" toml:"opacity" yaml:"opacity"`
	Choke   float64 `json:"choke" toml:"choke" yaml:"choke"`
	Size    float64 `json:"size" toml:"size" yaml:"size"`
}

// BevelEmboss fakes relief with a highlight on the lit edge and a shadow
// on the opposite edge. Depth is a percentage.
type BevelEmboss struct {
	Depth            float64 `json:"depth" toml:"depth" yaml:"depth"`
	Size             float64 `json:"size" toml:"size" yaml:"size"`
	Soften           float64 `json:"soften" toml:"soften" yaml:"soften"`
	Angle            float64 `json:"angle" toml:"angle" yaml:"angle"`
	HighlightColor   string  `json:"highlight_color" toml:"highlight_color" yaml:"highlight_color"`
	HighlightOpacity float64 `json:"highlight_opacity" toml:"highlight_opacity" yaml:"highlight_opacity"`
	ShadowColor      string  `json:"shadow_color" toml:"shadow_color" yaml:"shadow_color"`
	ShadowOpacity    float64 `json:"shadow_opacity" toml:"shadow_opacity" yaml:"shadow_opacity"`
}

// StrokePosition places a stroke relative to the layer edge.
type StrokePosition string

const (
	StrokeOutside StrokePosition = "outside"
	StrokeInside  StrokePosition = "inside"
	StrokeCenter  StrokePosition = "center"
)

// Stroke outlines the layer edge.
type Stroke struct {
	Color    string         `json:"color" toml:"color" yaml:"color"`
	Opacity  float64        `json:"opacity" toml:"opacity" yaml:"opacity"`
	Size     float64        `json:"size" toml:"size" yaml:"size"`
	Position StrokePosition `json:"position" toml:"position" yaml:"position"`
}

// ColorOverlay tints the layer with a solid color.
type ColorOverlay struct {
	Color     string              `json:"color" toml:"color" yaml:"color"`
	Opacity   float64             `json:"opacity" toml:"opacity" yaml:"opacity"`
	BlendMode embroider.BlendMode `json:"blend_mode" toml:"blend_mode" yaml:"blend_mode"`
}

// GradientStop is a color stop of a gradient overlay.
type GradientStop struct {
	Offset float64 `json:"offset" toml:"offset" yaml:"offset"`
	Color  string  `json:"color" toml:"color" yaml:"color"`
}

// GradientOverlay paints a linear gradient over the layer. Angle is in
// degrees, 0 running left to right and 90 bottom to top.
type GradientOverlay struct {
	Stops     []GradientStop      `json:"stops" toml:"stops" yaml:"stops"`
	Angle     float64             `json:"angle" toml:"angle" yaml:"angle"`
	Opacity   float64             `json:"opacity" toml:"opacity" yaml:"opacity"`
	BlendMode embroider.BlendMode `json:"blend_mode" toml:"blend_mode" yaml:"blend_mode"`
}

// PatternOverlay tiles an image over the layer.
type PatternOverlay struct {
	Pattern   *embroider.Pixmap   `json:"-" toml:"-" yaml:"-"`
	Scale     float64             `json:"scale" toml:"scale" yaml:"scale"`
	Opacity   float64             `json:"opacity" toml:"opacity" yaml:"opacity"`
	BlendMode embroider.BlendMode `json:"blend_mode" toml:"blend_mode" yaml:"blend_mode"`
}

func (DropShadow) Kind() Kind      { return KindDropShadow }
func (InnerShadow) Kind() Kind     { return KindInnerShadow }
func (OuterGlow) Kind() Kind       { return KindOuterGlow }
func (InnerGlow) Kind() Kind       { return KindInnerGlow }
func (BevelEmboss) Kind() Kind     { return KindBevelEmboss }
func (Stroke) Kind() Kind          { return KindStroke }
func (ColorOverlay) Kind() Kind    { return KindColorOverlay }
func (GradientOverlay) Kind() Kind { return KindGradientOverlay }
func (PatternOverlay) Kind() Kind  { return KindPatternOverlay }

// Defaults returns the image-editor default settings for kind, or nil for
// an unknown kind.
func Defaults(kind Kind) Settings {
	switch kind {
	case KindDropShadow:
		return DropShadow{Color: "#000000", Opacity: 0.75, Angle: 120, Distance: 5, Size: 5}
	case KindInnerShadow:
		return InnerShadow{Color: "#000000", Opacity: 0.75, Angle: 120, Distance: 5, Size: 5}
	case KindOuterGlow:
		return OuterGlow{Color: "#ffffbe", Opacity: 0.75, Size: 5}
	case KindInnerGlow:
		return InnerGlow{Color: "#ffffbe", Opacity: 0.75, Size: 5}
	case KindBevelEmboss:
		return BevelEmboss{
			Depth: 100, Size: 5, Angle: 120,
			HighlightColor: "#ffffff", HighlightOpacity: 0.75,
			ShadowColor: "#000000", ShadowOpacity: 0.75,
		}
	case KindStroke:
		return Stroke{Color: "#000000", Opacity: 1, Size: 3, Position: StrokeOutside}
	case KindColorOverlay:
		return ColorOverlay{Color: "#ff0000", Opacity: 1, BlendMode: embroider.BlendNormal}
	case KindGradientOverlay:
		return GradientOverlay{
			Stops:     []GradientStop{{Offset: 0, Color: "#000000"}, {Offset: 1, Color: "#ffffff"}},
			Angle:     90,
			Opacity:   1,
			BlendMode: embroider.BlendNormal,
		}
	case KindPatternOverlay:
		return PatternOverlay{Scale: 1, Opacity: 1, BlendMode: embroider.BlendNormal}
	}
	return nil
}
