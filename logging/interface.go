package logging

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/runningwild/glop/glog"
)

// Every helper in this package logs through defaultLogger; Redirect and
// SetLogLevel swap it out.
var defaultLogger glog.Logger

func init() {
	defaultLogger = glog.New(&glog.Opts{
		Level: slog.LevelInfo,
	})
}

func Debug(msg string, args ...interface{}) {
	doLog(slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...interface{}) {
	doLog(slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...interface{}) {
	doLog(slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...interface{}) {
	doLog(slog.LevelError, msg, args...)
}

func Trace(msg string, args ...interface{}) {
	doLog(glog.LevelTrace, msg, args...)
}

// Call this to redirect all logging output to the given io.Writer. A cleanup
// function that undoes the redirect is returned.
func Redirect(newOut io.Writer) func() {
	old := defaultLogger
	defaultLogger = glog.WithRedirect(old, newOut)
	return func() {
		defaultLogger = old
	}
}

// Routes the package-level helpers through defaultLogger while keeping
// the caller's source location on each record.
func doLog(lvl slog.Level, msg string, args ...interface{}) {
	if !defaultLogger.Enabled(context.Background(), lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip [Callers, doLog, <helper>]
	r := slog.NewRecord(time.Now(), lvl, msg, pcs[0])
	r.Add(args...)
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// Tells the 'Default Logger' to change its verbosity. The returned func
// restores the previous verbosity.
func SetLogLevel(lvl slog.Level) func() {
	old := defaultLogger
	defaultLogger = glog.Relevel(defaultLogger, lvl)
	return func() {
		defaultLogger = old
	}
}

// Maps a config-style level name onto a slog.Level. Unknown names fall back
// to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return glog.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
