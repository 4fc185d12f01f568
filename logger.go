package bertrand

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while parallel trials are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for bertrand and all its sub-packages.
// By default, bertrand produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by bertrand:
//   - [slog.LevelDebug]: per-trial diagnostics (resampling, chord verdicts)
//   - [slog.LevelInfo]: run lifecycle (estimates, rendered files)
//   - [slog.LevelWarn]: non-fatal issues (sink close errors)
//
// Example:
//
//	bertrand.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by bertrand.
// Sub-packages (sim, render) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
