package utils

import (
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

const colorReset = "\033[0m"

var levelStyles = [...]struct {
	name  string
	color string
}{
	LevelDebug: {"DEBUG", "\033[36m"},
	LevelInfo:  {"INFO", "\033[34m"},
	LevelWarn:  {"WARN", "\033[33m"},
	LevelError: {"ERROR", "\033[31m"},
}

var (
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool

	// Color wraps level tags in ANSI escapes.
	Color = true

	// DebugMode draws the outline of every tilted layer.
	DebugMode bool

	output = log.New(os.Stderr, "", log.LstdFlags)
)

// SetOutput redirects every log line to w.
func SetOutput(w io.Writer) { output.SetOutput(w) }

func (l LogLevel) String() string {
	if l < LevelDebug || int(l) >= len(levelStyles) {
		return "UNKNOWN"
	}
	return levelStyles[l].name
}

// ParseLevel maps a config/flag value onto a LogLevel. Unknown names fall
// back to LevelWarn.
func ParseLevel(name string) LogLevel {
	name = strings.ToUpper(strings.TrimSpace(name))
	for l, s := range levelStyles {
		if s.name == name {
			return LogLevel(l)
		}
	}
	return LevelWarn
}

func tag(label, color string) string {
	if !Color {
		return "[" + label + "] "
	}
	return color + "[" + label + "]" + colorReset + " "
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	emit(level, format, v...)
}

func emit(level LogLevel, format string, v ...interface{}) {
	s := levelStyles[level]
	output.Printf(tag(s.name, s.color)+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

// raylib TraceLogLevel values
var raylibLevels = map[int]LogLevel{
	1: LevelDebug, // LOG_TRACE
	2: LevelDebug, // LOG_DEBUG
	3: LevelInfo,
	4: LevelWarn,
	5: LevelError,
	6: LevelError, // LOG_FATAL
}

// RaylibLogCallback forwards raylib's trace log into the levelled logger.
// raylib's own info chatter is shown only with ShowRaylibInfo or at info
// level and below.
func RaylibLogCallback(level int, text string) {
	l, ok := raylibLevels[level]
	if !ok {
		return
	}
	if l < CurrentLevel && !(l == LevelInfo && ShowRaylibInfo) {
		return
	}
	emit(l, "%s%s", tag("RAYLIB", "\033[35m"), text)
}
