package layer

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/effect"
	"github.com/gogpu/embroider/internal/event"
)

// Store owns the layers of one design and composes them.
//
// A Store is NOT safe for concurrent use: composition writes into a single
// shared result canvas.
type Store struct {
	width, height int // display size
	scale         int
	layers        map[string]*Layer
	nextID        int
	result        *embroider.Canvas
	effects       *effect.Renderer
	bus           event.Bus[Event]
}

// NewStore creates an empty store whose layers are width x height display
// pixels.
func NewStore(width, height int, opts ...StoreOption) (*Store, error) {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	result, err := embroider.NewCanvas(width*o.superSample, height*o.superSample)
	if err != nil {
		return nil, fmt.Errorf("layer: new store: %w", err)
	}
	if o.effects == nil {
		o.effects = effect.NewRenderer()
	}
	return &Store{
		width:   width,
		height:  height,
		scale:   o.superSample,
		layers:  make(map[string]*Layer),
		result:  result,
		effects: o.effects,
	}, nil
}

// Width returns the display width.
func (s *Store) Width() int { return s.width }

// Height returns the display height.
func (s *Store) Height() int { return s.height }

// Scale returns the super-sampling factor. Layer canvases are Scale times
// the display size.
func (s *Store) Scale() int { return s.scale }

// Len returns the number of layers.
func (s *Store) Len() int { return len(s.layers) }

// Subscribe registers fn for store events and returns its unsubscribe
// function.
func (s *Store) Subscribe(fn func(Event)) func() {
	return s.bus.Subscribe(fn)
}

func (s *Store) emit(t EventType, id string) {
	s.bus.Publish(Event{Type: t, LayerID: id})
}

// Create adds a blank, visible, fully opaque layer on top of the stack.
func (s *Store) Create(name string) *Layer {
	s.nextID++
	l := &Layer{
		ID:        "layer-" + strconv.Itoa(s.nextID),
		Name:      name,
		Canvas:    embroider.MustNewCanvas(s.width*s.scale, s.height*s.scale),
		Opacity:   1,
		BlendMode: embroider.BlendNormal,
		Visible:   true,
		Order:     len(s.layers),
	}
	s.layers[l.ID] = l
	embroider.Logger().Debug("layer created", "id", l.ID, "name", name, "order", l.Order)
	s.emit(EventCreated, l.ID)
	return l
}

// Get returns the layer with the given id.
func (s *Store) Get(id string) (*Layer, error) {
	l, ok := s.layers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, id)
	}
	return l, nil
}

// Layers returns the layers in ascending order (bottom first).
func (s *Store) Layers() []*Layer {
	out := make([]*Layer, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b *Layer) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return compareIDs(a.ID, b.ID)
	})
	return out
}

// renumber assigns consecutive orders 0..n-1 following the given sequence.
func renumber(ls []*Layer) {
	for i, l := range ls {
		l.Order = i
	}
}

// mutable returns the layer if it exists and is not locked.
func (s *Store) mutable(id string) (*Layer, error) {
	l, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if l.Locked {
		return nil, fmt.Errorf("%w: %q", ErrLayerLocked, id)
	}
	return l, nil
}

// Draw runs fn against the layer canvas.
func (s *Store) Draw(id string, fn func(dc embroider.Context2D)) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	l.Canvas.Save()
	fn(l.Canvas)
	l.Canvas.Restore()
	s.emit(EventDrawn, id)
	return nil
}

// Clear erases the layer canvas.
func (s *Store) Clear(id string) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	l.Canvas.Clear()
	s.emit(EventDrawn, id)
	return nil
}

// Delete removes the layer and releases its canvas.
func (s *Store) Delete(id string) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	s.remove(l)
	renumber(s.Layers())
	s.emit(EventDeleted, id)
	return nil
}

func (s *Store) remove(l *Layer) {
	delete(s.layers, l.ID)
	l.Canvas.Pixmap().Release()
	if l.Mask != nil {
		l.Mask.Canvas.Pixmap().Release()
	}
}

// Move places the layer at position order (0 is the bottom), clamped to
// the stack, shifting the others.
func (s *Store) Move(id string, order int) error {
	l, err := s.Get(id)
	if err != nil {
		return err
	}
	ls := s.Layers()
	i := slices.Index(ls, l)
	ls = slices.Delete(ls, i, i+1)
	order = max(0, min(order, len(ls)))
	ls = slices.Insert(ls, order, l)
	renumber(ls)
	s.emit(EventMoved, id)
	return nil
}

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (s *Store) SetOpacity(id string, opacity float64) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	l.Opacity = clamp01(opacity)
	s.emit(EventChanged, id)
	return nil
}

// SetBlendMode sets the layer blend mode.
func (s *Store) SetBlendMode(id string, mode embroider.BlendMode) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	if !mode.Exact() {
		embroider.Logger().Debug("blend mode approximated", "id", id, "mode", string(mode),
			"op", mode.CompositeOp().String())
	}
	l.BlendMode = mode
	s.emit(EventChanged, id)
	return nil
}

// SetVisible shows or hides the layer. Locked layers can be hidden.
func (s *Store) SetVisible(id string, visible bool) error {
	l, err := s.Get(id)
	if err != nil {
		return err
	}
	l.Visible = visible
	s.emit(EventChanged, id)
	return nil
}

// SetLocked locks or unlocks the layer.
func (s *Store) SetLocked(id string, locked bool) error {
	l, err := s.Get(id)
	if err != nil {
		return err
	}
	l.Locked = locked
	s.emit(EventChanged, id)
	return nil
}

// AddEffect appends an effect to the layer's stack.
func (s *Store) AddEffect(id string, e effect.Effect) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("%s-fx-%d", id, len(l.Effects)+1)
	}
	l.Effects = append(l.Effects, e)
	s.emit(EventChanged, id)
	return nil
}

// SetEffectEnabled enables or disables an effect, keeping its place.
func (s *Store) SetEffectEnabled(id, effectID string, enabled bool) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	i := effectIndex(l, effectID)
	if i < 0 {
		return fmt.Errorf("%w: %q on %q", ErrEffectNotFound, effectID, id)
	}
	l.Effects[i].Enabled = enabled
	s.emit(EventChanged, id)
	return nil
}

// RemoveEffect drops an effect from the layer.
func (s *Store) RemoveEffect(id, effectID string) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	i := effectIndex(l, effectID)
	if i < 0 {
		return fmt.Errorf("%w: %q on %q", ErrEffectNotFound, effectID, id)
	}
	l.Effects = slices.Delete(l.Effects, i, i+1)
	s.emit(EventChanged, id)
	return nil
}

func effectIndex(l *Layer, effectID string) int {
	return slices.IndexFunc(l.Effects, func(e effect.Effect) bool { return e.ID == effectID })
}

// SetMask attaches a mask. The mask canvas must match the layer canvas.
func (s *Store) SetMask(id string, m *Mask) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	if m == nil || m.Canvas == nil {
		return s.ClearMask(id)
	}
	if m.Canvas.Width() != l.Canvas.Width() || m.Canvas.Height() != l.Canvas.Height() {
		return fmt.Errorf("%w: %dx%d, want %dx%d", ErrMaskSize,
			m.Canvas.Width(), m.Canvas.Height(), l.Canvas.Width(), l.Canvas.Height())
	}
	l.Mask = m
	s.emit(EventChanged, id)
	return nil
}

// ClearMask removes the layer mask.
func (s *Store) ClearMask(id string) error {
	l, err := s.mutable(id)
	if err != nil {
		return err
	}
	l.Mask = nil
	s.emit(EventChanged, id)
	return nil
}

// Duplicate copies the layer (pixels, effects and mask) directly above it.
func (s *Store) Duplicate(id string) (*Layer, error) {
	src, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	cp := s.Create(src.Name + " copy")
	cp.Canvas.DrawImage(src.Canvas.Pixmap(), 0, 0)
	cp.Opacity = src.Opacity
	cp.BlendMode = src.BlendMode
	cp.Visible = src.Visible
	cp.Effects = slices.Clone(src.Effects)
	cp.Mask = src.Mask.clone()
	if err := s.Move(cp.ID, src.Order+1); err != nil {
		return nil, err
	}
	return cp, nil
}

// MergeDown renders the layer, with its effects, mask, opacity and blend
// mode, into the layer below it and removes it.
func (s *Store) MergeDown(id string) error {
	upper, err := s.mutable(id)
	if err != nil {
		return err
	}
	ls := s.Layers()
	i := slices.Index(ls, upper)
	if i == 0 {
		return fmt.Errorf("%w: %q", ErrNoLayerBelow, id)
	}
	lower := ls[i-1]
	if lower.Locked {
		return fmt.Errorf("%w: %q", ErrLayerLocked, lower.ID)
	}
	if upper.Visible {
		s.drawLayer(lower.Canvas, upper)
	}
	s.remove(upper)
	renumber(s.Layers())
	s.emit(EventMerged, lower.ID)
	return nil
}

// Flatten replaces every layer with a single layer holding the composed
// image.
func (s *Store) Flatten() *Layer {
	composed := s.Compose().Clone()
	for _, l := range s.Layers() {
		s.remove(l)
	}
	flat := s.Create("flattened")
	flat.Canvas.DrawImage(composed, 0, 0)
	embroider.Logger().Info("layers flattened", "id", flat.ID)
	s.emit(EventFlattened, flat.ID)
	return flat
}

// compareIDs orders "layer-N" ids numerically.
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
