// Package stitch turns polylines into embroidery stitch drawings.
//
// A Registry maps stitch-type ids to Renderers. Each Renderer walks the
// points of a path and draws its pattern onto any embroider.Context2D:
//
//	reg := stitch.NewRegistry()
//	ok := reg.Render(dc, pts, "cross-stitch", stitch.Config{Color: "#cc3344", Thickness: 3}, stitch.RenderOptions{})
//
// Rendering never fails loudly. A missing renderer or an invalid config is
// logged and reported as false, and the caller skips that stitch.
package stitch

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/embroider"
)

// Built-in stitch type ids.
const (
	TypeCrossStitch   = "cross-stitch"
	TypeSatin         = "satin"
	TypeChain         = "chain"
	TypeFill          = "fill"
	TypeFrenchKnot    = "french-knot"
	TypeSeed          = "seed"
	TypeVariegated    = "variegated"
	TypeGradient      = "gradient"
	TypeMetallic      = "metallic"
	TypeGlowThread    = "glow-thread"
	TypeBackStitch    = "back-stitch"
	TypeRunningStitch = "running-stitch"
	TypeBlanket       = "blanket"
	TypeFeather       = "feather"
	TypeHerringbone   = "herringbone"
	TypeBullion       = "bullion"
	TypeLazyDaisy     = "lazy-daisy"
	TypeCouching      = "couching"
	TypeApplique      = "applique"
	TypeStem          = "stem"
	TypeSplit         = "split"
	TypeBrick         = "brick"
	TypeLongShort     = "long-short"
	TypeFishbone      = "fishbone"
	TypeSatinRibbon   = "satin-ribbon"
)

var (
	// ErrInvalidConfig is wrapped by ValidateConfig failures.
	ErrInvalidConfig = errors.New("stitch: invalid config")
	// ErrNoRenderer is returned when no renderer, not even the fallback,
	// can draw a stitch.
	ErrNoRenderer = errors.New("stitch: no renderer")
)

// Config is the style a stitch is drawn with. It is the JSON object the
// editor UI sends with every stroke. Zero fields are filled from the
// renderer's default config.
type Config struct {
	Type      string  `json:"type" toml:"type" yaml:"type"`
	Color     string  `json:"color" toml:"color" yaml:"color"`
	Thickness float64 `json:"thickness" toml:"thickness" yaml:"thickness"`
	Opacity   float64 `json:"opacity" toml:"opacity" yaml:"opacity"`
	Density   float64 `json:"density,omitempty" toml:"density" yaml:"density,omitempty"`
}

// withDefaults fills zero fields of c from d.
func (c Config) withDefaults(d Config) Config {
	if c.Type == "" {
		c.Type = d.Type
	}
	if c.Color == "" {
		c.Color = d.Color
	}
	if c.Thickness == 0 {
		c.Thickness = d.Thickness
	}
	if c.Opacity == 0 {
		c.Opacity = d.Opacity
	}
	if c.Density == 0 {
		c.Density = d.Density
	}
	return c
}

// validate checks the fields every renderer relies on.
func (c Config) validate() error {
	if len(c.Color) != 7 {
		return fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalidConfig, c.Color)
	}
	if _, err := embroider.ParseHex(c.Color); err != nil {
		return fmt.Errorf("%w: color %q: %w", ErrInvalidConfig, c.Color, err)
	}
	if !(c.Thickness > 0) {
		return fmt.Errorf("%w: thickness %v must be positive", ErrInvalidConfig, c.Thickness)
	}
	if !(c.Opacity >= 0 && c.Opacity <= 1) {
		return fmt.Errorf("%w: opacity %v outside [0, 1]", ErrInvalidConfig, c.Opacity)
	}
	if c.Density < 0 {
		return fmt.Errorf("%w: density %v is negative", ErrInvalidConfig, c.Density)
	}
	return nil
}

// Stitch is a rendered embroidery primitive: a path plus the style it is
// drawn with.
type Stitch struct {
	ID        string            `json:"id" toml:"id" yaml:"id"`
	Type      string            `json:"type" toml:"type" yaml:"type"`
	Points    []embroider.Point `json:"points" toml:"points" yaml:"points"`
	Color     string            `json:"color" toml:"color" yaml:"color"`
	Thickness float64           `json:"thickness" toml:"thickness" yaml:"thickness"`
	Opacity   float64           `json:"opacity" toml:"opacity" yaml:"opacity"`
	Density   float64           `json:"density" toml:"density" yaml:"density"`
}

// Config returns the style part of the stitch.
func (s Stitch) Config() Config {
	return Config{
		Type:      s.Type,
		Color:     s.Color,
		Thickness: s.Thickness,
		Opacity:   s.Opacity,
		Density:   s.Density,
	}
}

// New builds a stitch of the given style over a copy of pts.
func New(id string, pts []embroider.Point, cfg Config) Stitch {
	cp := make([]embroider.Point, len(pts))
	copy(cp, pts)
	return Stitch{
		ID:        id,
		Type:      NormalizeType(cfg.Type),
		Points:    cp,
		Color:     cfg.Color,
		Thickness: cfg.Thickness,
		Opacity:   cfg.Opacity,
		Density:   cfg.Density,
	}
}

var foldAccents = runes.Remove(runes.In(unicode.Mn))

// NormalizeType canonicalizes a stitch-type id as typed by a user or sent
// by an older client: "Cross Stitch", "CROSS_STITCH" and "cross-stitch"
// all become "cross-stitch", and "Appliqué" becomes "applique".
func NormalizeType(s string) string {
	t := transform.Chain(norm.NFD, foldAccents, norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(strings.TrimSpace(folded))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	return strings.Join(fields, "-")
}
