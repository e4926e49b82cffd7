package logging

import (
	"log/slog"

	"github.com/runningwild/glop/glog"
)

// Run 'fn' in a context where log messages at 'lvl' and above are propagated.
func Bracket(lvl slog.Level, fn func()) {
	fixup := SetLogLevel(lvl)
	defer fixup()
	fn()
}

func TraceBracket(fn func()) {
	Bracket(glog.LevelTrace, fn)
}
