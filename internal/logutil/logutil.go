// Package logutil configures the slog logger used by the conv2d command and
// adds a TRACE level below Debug for per-call kernel logging.
package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"
)

// LevelTrace sits below slog.LevelDebug. The kernels log every call at this
// level; the command enables it with CONV2D_DEBUG=2.
const LevelTrace = slog.LevelDebug - 4

// NewLogger returns a text logger writing records at or above level to w.
// Records carry their source file's base name, and LevelTrace prints as TRACE.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: replaceAttr,
	}))
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok {
			src.File = filepath.Base(src.File)
		}
	}
	return a
}

// TraceSince logs msg at LevelTrace on the default logger with an "elapsed"
// attribute measured from start. The record's source is the caller. Kernel
// entry points defer it so the record covers the whole kernel:
//
//	defer logutil.TraceSince("conv2d forward", time.Now(), "params", p)
func TraceSince(msg string, start time.Time, args ...any) {
	ctx := context.Background()
	logger := slog.Default()
	if !logger.Enabled(ctx, LevelTrace) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip Callers and TraceSince
	r := slog.NewRecord(time.Now(), LevelTrace, msg, pcs[0])
	r.Add(args...)
	r.Add("elapsed", time.Since(start))
	_ = logger.Handler().Handle(ctx, r)
}
