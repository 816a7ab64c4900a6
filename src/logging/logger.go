// Package logging prints "[LEVEL] message" lines for the nn-test commands. There is one
// process-wide level; nnplot, nnreader and nnconvert set it from -log-level or the
// config file before they touch any run.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel orders messages from chatty to fatal.
type LogLevel int32

const (
	LevelDebug LogLevel = iota // per-file decode details, trailing bytes, timings
	LevelInfo                  // files written and exported
	LevelWarn
	LevelError // the failure a command exits with
)

var levelLabels = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String is the tag printed in front of each message.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
	return levelLabels[l]
}

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var (
	currentLevel = int32(LevelInfo)
	baseLogger   = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

// ParseLevel accepts the names used by -log-level and NNPLOT_LOGGING_LEVEL, in any case.
func ParseLevel(s string) (LogLevel, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel switches the level by name and leaves it alone for a name it does not know;
// config.Validate has already rejected those by the time a command calls this.
func SetLogLevel(s string) {
	if l, ok := ParseLevel(s); ok {
		atomic.StoreInt32(&currentLevel, int32(l))
	}
}

// GetLogLevel returns the level in effect.
func GetLogLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// SetOutput sends every following line to w.
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

func logf(l LogLevel, format string, args ...interface{}) {
	if l < GetLogLevel() {
		return
	}
	msg := format
	// file names like run_100%.bin reach here as the whole message
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack is deferred around a step ("load runs", "render") to time it at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
