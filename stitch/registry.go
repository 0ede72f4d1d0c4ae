package stitch

import (
	"fmt"
	"slices"

	"github.com/gogpu/embroider"
)

// Renderer draws one stitch type.
type Renderer interface {
	// ID returns the canonical stitch-type id, e.g. "cross-stitch".
	ID() string
	// Name returns a human readable name.
	Name() string
	// CanHandle reports whether the renderer draws for the given tool and
	// config.
	CanHandle(tool string, cfg Config) bool
	// Render draws pts with cfg. The config has already been validated.
	Render(dc embroider.Context2D, pts []embroider.Point, cfg Config)
	// ValidateConfig reports why cfg cannot be rendered, or nil.
	ValidateConfig(cfg Config) error
	// DefaultConfig returns the style used for unset config fields.
	DefaultConfig() Config
}

// RenderOptions adjust a single Render call.
type RenderOptions struct {
	// Opacity multiplies the stitch opacity. Zero means 1.
	Opacity float64
}

func (o RenderOptions) opacity() float64 {
	if o.Opacity <= 0 || o.Opacity > 1 {
		return 1
	}
	return o.Opacity
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	fallback string
	builtins bool
	extra    []Renderer
}

// WithFallback sets the renderer id used when neither the tool nor the
// config type has a renderer. The default is satin.
func WithFallback(id string) RegistryOption {
	return func(o *registryOptions) {
		o.fallback = NormalizeType(id)
	}
}

// WithRenderer registers additional renderers after the built-ins,
// replacing built-ins with the same id.
func WithRenderer(rs ...Renderer) RegistryOption {
	return func(o *registryOptions) {
		o.extra = append(o.extra, rs...)
	}
}

// WithoutBuiltins starts the registry empty.
func WithoutBuiltins() RegistryOption {
	return func(o *registryOptions) {
		o.builtins = false
	}
}

// Registry maps stitch-type ids to renderers.
//
// A Registry is not safe for concurrent mutation; concurrent Render calls
// on an unchanging registry are fine.
type Registry struct {
	byID     map[string]Renderer
	order    []string
	fallback string
}

// NewRegistry creates a registry holding the 25 built-in renderers.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{fallback: TypeSatin, builtins: true}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry{byID: make(map[string]Renderer), fallback: o.fallback}
	if o.builtins {
		for _, rd := range Builtins() {
			r.Register(rd)
		}
	}
	for _, rd := range o.extra {
		r.Register(rd)
	}
	return r
}

// Register adds rd, replacing any renderer with the same id.
func (r *Registry) Register(rd Renderer) {
	id := rd.ID()
	if _, ok := r.byID[id]; !ok {
		r.order = append(r.order, id)
	}
	r.byID[id] = rd
}

// Unregister removes the renderer with the given id.
func (r *Registry) Unregister(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return true
}

// Lookup returns the renderer registered under id.
func (r *Registry) Lookup(id string) (Renderer, bool) {
	rd, ok := r.byID[id]
	return rd, ok
}

// Types returns the registered ids in registration order.
func (r *Registry) Types() []string {
	return slices.Clone(r.order)
}

// Fallback returns the fallback renderer id.
func (r *Registry) Fallback() string { return r.fallback }

// FindRenderer picks the renderer for a tool: an exact id match on tool
// first, then any renderer that can handle the tool or cfg.Type, then the
// fallback. It returns nil when not even the fallback is registered.
func (r *Registry) FindRenderer(tool string, cfg Config) Renderer {
	if rd, ok := r.byID[tool]; ok {
		return rd
	}
	for _, id := range r.order {
		if rd := r.byID[id]; rd.CanHandle(tool, cfg) {
			return rd
		}
	}
	if rd, ok := r.byID[r.fallback]; ok {
		embroider.Logger().Debug("stitch: using fallback renderer", "tool", tool, "type", cfg.Type, "fallback", r.fallback)
		return rd
	}
	return nil
}

// Render draws pts for tool with cfg. Zero config fields are filled from the
// renderer's defaults and the draw is wrapped in Save/Restore so no style
// leaks out. It returns false, after logging the reason, when no renderer
// is found or the config is invalid.
func (r *Registry) Render(dc embroider.Context2D, pts []embroider.Point, tool string, cfg Config, opts RenderOptions) bool {
	if err := r.render(dc, pts, tool, cfg, opts); err != nil {
		embroider.Logger().Warn("stitch: render skipped", "tool", tool, "err", err)
		return false
	}
	return true
}

func (r *Registry) render(dc embroider.Context2D, pts []embroider.Point, tool string, cfg Config, opts RenderOptions) error {
	rd := r.FindRenderer(tool, cfg)
	if rd == nil {
		return fmt.Errorf("%w for tool %q (type %q)", ErrNoRenderer, tool, cfg.Type)
	}
	cfg = cfg.withDefaults(rd.DefaultConfig())
	if err := rd.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("%s: %w", rd.ID(), err)
	}
	cfg.Opacity *= opts.opacity()

	dc.Save()
	defer dc.Restore()
	rd.Render(dc, pts, cfg)
	embroider.Logger().Debug("stitch: rendered", "renderer", rd.ID(), "points", len(pts))
	return nil
}

// RenderStitch draws s using its type as the tool.
func (r *Registry) RenderStitch(dc embroider.Context2D, s Stitch, opts RenderOptions) bool {
	return r.Render(dc, s.Points, s.Type, s.Config(), opts)
}
