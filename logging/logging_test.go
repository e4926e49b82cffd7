package logging_test

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/MobRulesGames/isomap/logging"
	"github.com/runningwild/glop/glog"
	. "github.com/smartystreets/goconvey/convey"
)

func parseSourceAttr(line string) (string, bool) {
	idx := strings.LastIndex(line, "source=")
	if idx == -1 {
		return "", false
	}

	sourcePlus := line[idx+(len("source=")):]
	parts := strings.SplitN(sourcePlus, ":", 2)
	if len(parts) != 2 {
		return "", false
	}

	return parts[0], true
}

func ShouldReference(actual interface{}, expected ...interface{}) string {
	lineReader, ok := actual.(io.Reader)
	if !ok {
		panic(fmt.Errorf("'actual' had wrong type: want io.Reader, got %T", actual))
	}

	target, ok := expected[0].(string)
	if !ok {
		panic(fmt.Errorf("'expected[0]' had wrong type: want string, got %T", expected[0]))
	}

	outputBytes, err := io.ReadAll(lineReader)
	if err != nil {
		panic(fmt.Errorf("couldn't io.ReadAll: %w", err))
	}

	for _, line := range strings.Split(string(outputBytes), "\n") {
		sourceAttr, found := parseSourceAttr(line)
		if found && strings.Contains(sourceAttr, target) {
			return ""
		}
	}

	return fmt.Sprintf("did not find %q amongst output %q", target, string(outputBytes))
}

func LoggingSpec() {
	Convey("the source attribute in a log message", func() {
		buf := &bytes.Buffer{}
		reset := logging.Redirect(buf)
		logging.Info("a test message")
		reset()

		Convey("should reference the client code", func() {
			So(buf, ShouldReference, "logging/logging_test.go")
		})
	})

	Convey("structured arguments are kept", func() {
		buf := &bytes.Buffer{}
		reset := logging.Redirect(buf)
		logging.Warn("loaded map", "width", 128, "height", 64)
		reset()

		So(buf.String(), ShouldContainSubstring, "width=128")
		So(buf.String(), ShouldContainSubstring, "height=64")
	})

	Convey("redirection should be resettable", func() {
		buf1 := &bytes.Buffer{}
		buf2 := &bytes.Buffer{}

		resetOuter := logging.Redirect(buf1)
		logging.Error("message 1")

		resetInner := logging.Redirect(buf2)
		logging.Error("message 2")
		resetInner()

		logging.Error("message 3")
		resetOuter()

		So(buf1.String(), ShouldContainSubstring, "message 1")
		So(buf1.String(), ShouldNotContainSubstring, "message 2")
		So(buf1.String(), ShouldContainSubstring, "message 3")
		So(buf2.String(), ShouldContainSubstring, "message 2")
		So(buf2.String(), ShouldNotContainSubstring, "message 3")
	})

	Convey("a level set while redirected is undone with it", func() {
		buf := &bytes.Buffer{}
		reset := logging.Redirect(buf)
		undoLevel := logging.SetLogLevel(slog.LevelError)
		logging.Warn("quiet")
		undoLevel()
		logging.Warn("loud")
		reset()

		So(buf.String(), ShouldNotContainSubstring, "quiet")
		So(buf.String(), ShouldContainSubstring, "loud")
	})

	Convey("level names parse", func() {
		So(logging.ParseLevel("trace"), ShouldEqual, glog.LevelTrace)
		So(logging.ParseLevel("debug"), ShouldEqual, slog.LevelDebug)
		So(logging.ParseLevel("warning"), ShouldEqual, slog.LevelWarn)
		So(logging.ParseLevel("error"), ShouldEqual, slog.LevelError)
		So(logging.ParseLevel("nonsense"), ShouldEqual, slog.LevelInfo)
	})
}

func TestLogging(t *testing.T) {
	Convey("logging.{Info,Warn,Error} specification", t, LoggingSpec)
}
