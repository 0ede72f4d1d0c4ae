// Package design reads embroidery design files and builds them into layers
// and needle plans.
//
// A design is a canvas size, an optional background and a stack of layers,
// each holding stitches. TOML and YAML are accepted:
//
//	width = 400
//	height = 300
//
//	[[layers]]
//	name = "outline"
//	blend = "multiply"
//
//	[[layers.stitches]]
//	type = "satin"
//	color = "#b03060"
//	thickness = 4
//	points = [[40, 40], [360, 40], [360, 260]]
package design

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/embroider"
)

var (
	// ErrUnknownFormat is returned for a file extension that is neither
	// TOML nor YAML.
	ErrUnknownFormat = errors.New("design: unknown format")
	// ErrInvalidDesign is wrapped by validation failures.
	ErrInvalidDesign = errors.New("design: invalid design")
)

// Format is a design file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Design is the decoded form of a design file.
type Design struct {
	Name       string  `toml:"name" yaml:"name"`
	Width      int     `toml:"width" yaml:"width"`
	Height     int     `toml:"height" yaml:"height"`
	Background string  `toml:"background" yaml:"background"`
	MMPerPx    float64 `toml:"mm_per_px" yaml:"mm_per_px"`
	// SuperSample renders layers at this multiple of the canvas size.
	SuperSample int     `toml:"super_sample" yaml:"super_sample"`
	Layers      []Layer `toml:"layers" yaml:"layers"`
}

// Layer is one layer of a design. Opacity and Visible default to 1 and
// true when omitted.
type Layer struct {
	Name     string              `toml:"name" yaml:"name"`
	Opacity  *float64            `toml:"opacity" yaml:"opacity"`
	Blend    embroider.BlendMode `toml:"blend" yaml:"blend"`
	Visible  *bool               `toml:"visible" yaml:"visible"`
	Locked   bool                `toml:"locked" yaml:"locked"`
	Effects  []Effect            `toml:"effects" yaml:"effects"`
	Stitches []Stitch            `toml:"stitches" yaml:"stitches"`
}

// Effect is a layer style. Settings override the defaults of the kind and
// use the same keys as the effect settings records.
type Effect struct {
	Kind     string         `toml:"kind" yaml:"kind"`
	Disabled bool           `toml:"disabled" yaml:"disabled"`
	Settings map[string]any `toml:"settings" yaml:"settings"`
}

// Stitch is one drawn line.
type Stitch struct {
	Type      string       `toml:"type" yaml:"type"`
	Color     string       `toml:"color" yaml:"color"`
	Thickness float64      `toml:"thickness" yaml:"thickness"`
	Opacity   float64      `toml:"opacity" yaml:"opacity"`
	Density   float64      `toml:"density" yaml:"density"`
	Points    [][2]float64 `toml:"points" yaml:"points"`
}

// Pts returns the stitch points.
func (s Stitch) Pts() []embroider.Point {
	out := make([]embroider.Point, len(s.Points))
	for i, p := range s.Points {
		out[i] = embroider.Pt(p[0], p[1])
	}
	return out
}

// Load reads a design file, choosing the decoder by extension.
func Load(path string) (*Design, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	defer f.Close()
	d, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode reads a design in the given format and validates it.
func Decode(r io.Reader, format Format) (*Design, error) {
	var d Design
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, fmt.Errorf("design: toml: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			embroider.Logger().Warn("design: unknown keys ignored", "keys", fmt.Sprint(keys))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("design: yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode writes d in the given format.
func Encode(w io.Writer, d *Design, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Validate checks the canvas size, colors and stitch points.
func (d *Design) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDesign, d.Width, d.Height)
	}
	if d.Background != "" {
		if _, err := embroider.ParseHex(d.Background); err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidDesign, err)
		}
	}
	for i, l := range d.Layers {
		if l.Opacity != nil && (*l.Opacity < 0 || *l.Opacity > 1) {
			return fmt.Errorf("%w: layer %d: opacity %v out of [0,1]", ErrInvalidDesign, i, *l.Opacity)
		}
		for j, s := range l.Stitches {
			if len(s.Points) == 0 {
				return fmt.Errorf("%w: layer %d stitch %d: no points", ErrInvalidDesign, i, j)
			}
		}
	}
	return nil
}
