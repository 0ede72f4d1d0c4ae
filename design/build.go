package design

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/effect"
	"github.com/gogpu/embroider/layer"
	"github.com/gogpu/embroider/plan"
	"github.com/gogpu/embroider/stitch"
)

// Result is a built design.
type Result struct {
	Store    *layer.Store
	Stitches []stitch.Stitch
	// Plans holds one needle plan per rendered stitch, in drawing order.
	Plans []plan.Plan
	// Skipped counts stitches the registry refused to draw.
	Skipped int
}

// Plan joins the stitch plans into one needle path.
func (r *Result) Plan() plan.Plan {
	return plan.Concat(r.Plans...)
}

// Build renders d into a new layer store using reg and plans every stitch
// it draws. A background color becomes a bottom layer named "background".
func Build(d *Design, reg *stitch.Registry) (*Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var opts []layer.StoreOption
	if d.SuperSample > 1 {
		opts = append(opts, layer.WithSuperSample(d.SuperSample))
	}
	s, err := layer.NewStore(d.Width, d.Height, opts...)
	if err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	res := &Result{Store: s}
	scale := float64(s.Scale())

	if d.Background != "" {
		bg := s.Create("background")
		col := embroider.Hex(d.Background)
		w, h := float64(d.Width)*scale, float64(d.Height)*scale
		_ = s.Draw(bg.ID, func(dc embroider.Context2D) {
			dc.SetFillStyle(embroider.Solid{Color: col})
			dc.FillRect(0, 0, w, h)
		})
	}

	popts := plan.DefaultOptions()
	if d.MMPerPx > 0 {
		popts.MMPerPx = d.MMPerPx
	}

	for i, dl := range d.Layers {
		name := dl.Name
		if name == "" {
			name = fmt.Sprintf("layer %d", i+1)
		}
		l := s.Create(name)
		for j, ds := range dl.Stitches {
			st := stitch.New(fmt.Sprintf("%s-stitch-%d", l.ID, j+1), ds.Pts(), stitch.Config{
				Type:      ds.Type,
				Color:     ds.Color,
				Thickness: ds.Thickness,
				Opacity:   ds.Opacity,
				Density:   ds.Density,
			})
			drawn := st
			if scale != 1 {
				drawn = scaled(st, scale)
			}
			var ok bool
			_ = s.Draw(l.ID, func(dc embroider.Context2D) {
				ok = reg.RenderStitch(dc, drawn, stitch.RenderOptions{})
			})
			if !ok {
				res.Skipped++
				continue
			}
			res.Stitches = append(res.Stitches, st)
			res.Plans = append(res.Plans, plan.FromStitch(st, popts))
		}
		for k, de := range dl.Effects {
			e, err := de.build(fmt.Sprintf("%s-effect-%d", l.ID, k+1))
			if err != nil {
				return nil, fmt.Errorf("design: layer %q: %w", name, err)
			}
			if err := s.AddEffect(l.ID, e); err != nil {
				return nil, fmt.Errorf("design: %w", err)
			}
		}
		if dl.Opacity != nil {
			_ = s.SetOpacity(l.ID, *dl.Opacity)
		}
		if dl.Blend != "" {
			_ = s.SetBlendMode(l.ID, dl.Blend)
		}
		if dl.Visible != nil {
			_ = s.SetVisible(l.ID, *dl.Visible)
		}
		// last, so the setters above still apply
		if dl.Locked {
			_ = s.SetLocked(l.ID, true)
		}
	}
	embroider.Logger().Info("design: built", "name", d.Name, "layers", s.Len(),
		"stitches", len(res.Stitches), "skipped", res.Skipped)
	return res, nil
}

func scaled(st stitch.Stitch, k float64) stitch.Stitch {
	pts := make([]embroider.Point, len(st.Points))
	for i, p := range st.Points {
		pts[i] = p.Mul(k)
	}
	st.Points = pts
	st.Thickness *= k
	return st
}

// build overlays the settings map on the defaults of the effect kind. The
// map keys are the json names of the settings fields.
func (de Effect) build(id string) (effect.Effect, error) {
	def := effect.Defaults(effect.Kind(de.Kind))
	if def == nil {
		return effect.Effect{}, fmt.Errorf("%w: unknown effect %q", ErrInvalidDesign, de.Kind)
	}
	settings := def
	if len(de.Settings) > 0 {
		raw, err := json.Marshal(de.Settings)
		if err != nil {
			return effect.Effect{}, fmt.Errorf("%w: effect %q: %w", ErrInvalidDesign, de.Kind, err)
		}
		ptr := reflect.New(reflect.TypeOf(def))
		ptr.Elem().Set(reflect.ValueOf(def))
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			return effect.Effect{}, fmt.Errorf("%w: effect %q: %w", ErrInvalidDesign, de.Kind, err)
		}
		settings = ptr.Elem().Interface().(effect.Settings)
	}
	e := effect.New(id, settings)
	e.Enabled = !de.Disabled
	return e, nil
}
