// Package session drives the vector embroidery tool: it collects the
// anchors of the path being drawn, previews it on an overlay canvas and
// turns finished paths into stitches rendered through a stitch.Registry.
//
// The session is a small state machine:
//
//	Idle --AddPoint--> Drawing (or Previewing with real-time preview)
//	Drawing/Previewing --CompletePath--> Idle
//	any --ExitVectorMode--> Idle, overlay cleared
//
// All methods are safe to call from multiple goroutines; they are
// serialized so each handler runs to completion before the next starts.
package session

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/internal/event"
	"github.com/gogpu/embroider/stitch"
	"github.com/gogpu/embroider/vector"
)

// ErrNoRegistry is returned by New when no stitch registry is given.
var ErrNoRegistry = errors.New("session: nil stitch registry")

// PreviewOpacity is the opacity of the in-progress path preview.
const PreviewOpacity = 0.5

// State is the session's drawing state.
type State uint8

const (
	Idle State = iota
	Drawing
	Previewing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Previewing:
		return "previewing"
	}
	return "unknown"
}

// Session owns the in-progress path and the stitches completed so far.
type Session struct {
	mu       sync.Mutex
	reg      *stitch.Registry
	target   embroider.Context2D
	overlay  embroider.Context2D
	opts     options
	state    State
	path     vector.Path
	stitches []stitch.Stitch
	nextID   int
	bus      event.Bus[Event]
}

// New creates a session that commits stitches to target and draws previews
// and anchor markers on overlay. A nil overlay disables previews.
func New(reg *stitch.Registry, target, overlay embroider.Context2D, opts ...Option) (*Session, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{reg: reg, target: target, overlay: overlay, opts: o}, nil
}

// Subscribe registers fn for session events. Events are delivered after
// the call that caused them has released the session.
func (s *Session) Subscribe(fn func(Event)) func() {
	return s.bus.Subscribe(fn)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the stitch style new paths are converted with.
func (s *Session) Config() stitch.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.config
}

// SetConfig changes the stitch style used for the next completed path.
func (s *Session) SetConfig(cfg stitch.Config) {
	s.mu.Lock()
	cfg.Type = stitch.NormalizeType(cfg.Type)
	s.opts.config = cfg
	s.mu.Unlock()
}

// SetRealtimePreview turns the live preview on or off.
func (s *Session) SetRealtimePreview(on bool) {
	s.mu.Lock()
	s.opts.realtime = on
	s.mu.Unlock()
}

// Path returns a copy of the in-progress path.
func (s *Session) Path() *vector.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path.Clone()
}

// AddPoint appends an anchor to the in-progress path. With real-time
// preview on, the overlay is redrawn with the path at PreviewOpacity;
// nothing is committed to the target.
func (s *Session) AddPoint(p embroider.Point) {
	s.mu.Lock()
	evs := s.add(vector.PathPoint{Pos: p, Type: s.opts.pointType})
	s.mu.Unlock()
	s.publish(evs)
}

// AddAnchor is AddPoint with an explicit anchor type and handles.
func (s *Session) AddAnchor(pt vector.PathPoint) {
	s.mu.Lock()
	evs := s.add(pt)
	s.mu.Unlock()
	s.publish(evs)
}

func (s *Session) add(pt vector.PathPoint) []Event {
	s.path.Add(pt)
	next := Drawing
	if s.opts.realtime && s.overlay != nil {
		next = Previewing
	}
	evs := s.setState(nil, next)
	if next == Previewing {
		s.renderPreview()
	}
	return append(evs, Event{Type: EventPointAdded, Points: s.path.Len()})
}

// Preview redraws the overlay for the in-progress path. It is what the
// preview loop calls on every frame.
func (s *Session) Preview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle || s.overlay == nil {
		return false
	}
	s.renderPreview()
	return true
}

// renderPreview clears the overlay and draws the in-progress stitch and
// its anchors. Callers hold s.mu.
func (s *Session) renderPreview() {
	clearAll(s.overlay)
	pts := s.path.Flatten(s.opts.tolerance)
	cfg := s.opts.config
	s.reg.Render(s.overlay, pts, cfg.Type, cfg, stitch.RenderOptions{Opacity: PreviewOpacity})

	s.overlay.Save()
	s.overlay.SetFillStyle(embroider.Solid{Color: s.opts.anchorColor})
	const size = 4
	for _, a := range s.path.Anchors() {
		s.overlay.FillRect(a.X-size/2, a.Y-size/2, size, size)
	}
	s.overlay.Restore()
}

// CompletePath converts the in-progress path into a stitch of the selected
// type, renders it onto the target and clears the preview. It reports
// false when there is no path or the registry could not render it; the
// stitch is recorded either way once it has points.
func (s *Session) CompletePath() (stitch.Stitch, bool) {
	s.mu.Lock()
	st, ok, evs := s.complete(nil)
	s.mu.Unlock()
	s.publish(evs)
	return st, ok
}

func (s *Session) complete(evs []Event) (stitch.Stitch, bool, []Event) {
	if s.path.Len() == 0 {
		return stitch.Stitch{}, false, s.setState(evs, Idle)
	}
	s.nextID++
	id := "stitch-" + strconv.Itoa(s.nextID)
	st := stitch.New(id, s.path.Flatten(s.opts.tolerance), s.opts.config)
	s.stitches = append(s.stitches, st)
	s.path.Reset()

	ok := true
	if s.target != nil {
		ok = s.reg.RenderStitch(s.target, st, stitch.RenderOptions{})
	}
	if s.overlay != nil {
		clearAll(s.overlay)
	}
	embroider.Logger().Debug("session: path completed", "id", id, "type", st.Type, "points", len(st.Points), "rendered", ok)
	evs = append(evs, Event{Type: EventPathCompleted, StitchID: id, Points: len(st.Points)})
	return st, ok, s.setState(evs, Idle)
}

// ExitVectorMode completes any open path and clears the whole overlay
// canvas, anchor markers included. Anything else drawn on the overlay is
// cleared too, so the overlay must not be shared with a layer.
func (s *Session) ExitVectorMode() {
	s.mu.Lock()
	var evs []Event
	if s.path.Len() > 0 {
		_, _, evs = s.complete(evs)
	}
	if s.overlay != nil {
		clearAll(s.overlay)
	}
	evs = s.setState(evs, Idle)
	evs = append(evs, Event{Type: EventModeExited})
	s.mu.Unlock()
	embroider.Logger().Info("session: vector mode exited")
	s.publish(evs)
}

// Stitches returns the completed stitches in order.
func (s *Session) Stitches() []stitch.Stitch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]stitch.Stitch, len(s.stitches))
	copy(out, s.stitches)
	return out
}

// RerenderAll clears the target and renders every completed stitch again,
// returning how many rendered.
func (s *Session) RerenderAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return 0
	}
	clearAll(s.target)
	n := 0
	for _, st := range s.stitches {
		if s.reg.RenderStitch(s.target, st, stitch.RenderOptions{}) {
			n++
		}
	}
	return n
}

func (s *Session) setState(evs []Event, next State) []Event {
	if s.state == next {
		return evs
	}
	prev := s.state
	s.state = next
	embroider.Logger().Debug("session: state", "from", prev.String(), "to", next.String())
	return append(evs, Event{Type: EventStateChanged, From: prev, To: next})
}

func (s *Session) publish(evs []Event) {
	for _, ev := range evs {
		s.bus.Publish(ev)
	}
}

func clearAll(dc embroider.Context2D) {
	dc.ClearRect(0, 0, float64(dc.Width()), float64(dc.Height()))
}
