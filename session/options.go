package session

import (
	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/stitch"
	"github.com/gogpu/embroider/vector"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	config      stitch.Config
	realtime    bool
	tolerance   float64
	pointType   vector.PointType
	anchorColor embroider.RGBA
}

func defaultOptions() options {
	return options{
		config:      stitch.Config{Type: stitch.TypeSatin, Color: "#000000", Thickness: 3, Opacity: 1},
		realtime:    true,
		tolerance:   0.5,
		pointType:   vector.Corner,
		anchorColor: embroider.Hex("#1e90ff"),
	}
}

// WithConfig sets the initial stitch style.
func WithConfig(cfg stitch.Config) Option {
	return func(o *options) {
		cfg.Type = stitch.NormalizeType(cfg.Type)
		o.config = cfg
	}
}

// WithRealtimePreview enables or disables the live preview. It is on by
// default.
func WithRealtimePreview(on bool) Option {
	return func(o *options) { o.realtime = on }
}

// WithTolerance sets the curve flattening tolerance in pixels.
func WithTolerance(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.tolerance = px
		}
	}
}

// WithPointType sets the type of anchors added by AddPoint.
func WithPointType(t vector.PointType) Option {
	return func(o *options) { o.pointType = t }
}

// WithAnchorColor sets the color of the anchor markers on the overlay.
func WithAnchorColor(c embroider.RGBA) Option {
	return func(o *options) { o.anchorColor = c }
}
