package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PreviewLoop redraws a session's preview on every tick, the way an
// animation-frame loop would. Stop clears the active flag; the loop checks
// it before each frame and returns instead of drawing. A Stop issued while
// no loop is running cancels the next Run before it draws.
type PreviewLoop struct {
	s *Session

	mu      sync.Mutex
	running bool
	active  bool
	stopped bool // Stop arrived before Run

	frames atomic.Uint64
}

// NewPreviewLoop returns an inactive loop for s.
func NewPreviewLoop(s *Session) *PreviewLoop {
	return &PreviewLoop{s: s}
}

// Run marks the loop active and renders a preview frame per tick until
// Stop is called, ticks is closed or ctx is done. It returns ctx.Err() on
// cancellation and nil otherwise.
func (l *PreviewLoop) Run(ctx context.Context, ticks <-chan time.Time) error {
	if !l.start() {
		return nil
	}
	defer l.finish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok || !l.IsActive() {
				return nil
			}
			if l.s.Preview() {
				l.frames.Add(1)
			}
		}
	}
}

// start reports false, consuming the pending stop, if Stop ran first.
func (l *PreviewLoop) start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		l.stopped = false
		return false
	}
	l.running, l.active = true, true
	return true
}

func (l *PreviewLoop) finish() {
	l.mu.Lock()
	l.running, l.active = false, false
	l.mu.Unlock()
}

// Stop makes a running loop return at its next tick, or the next Run
// return immediately.
func (l *PreviewLoop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		l.active = false
		return
	}
	l.stopped = true
}

// IsActive reports whether the loop is running and not stopped.
func (l *PreviewLoop) IsActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Frames returns the number of preview frames drawn.
func (l *PreviewLoop) Frames() uint64 {
	return l.frames.Load()
}
