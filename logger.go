package embroider

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a preview loop is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for embroider and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by embroider:
//   - [slog.LevelDebug]: per-draw diagnostics (stitch counts, effect passes)
//   - [slog.LevelInfo]: lifecycle events (session mode changes, flatten)
//   - [slog.LevelWarn]: silent fallbacks (malformed colors, missing
//     renderers, rejected stitch configs)
//
// Example:
//
//	embroider.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (layer, effect, stitch,
// session) call this to share one configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
