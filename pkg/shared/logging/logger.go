// Package logging provides the leveled, module-scoped logger shared by every
// component of the client.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents log level
type Level int

const (
	// LevelDebug is for debug messages
	LevelDebug Level = iota
	// LevelInfo is for informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
	// LevelFatal is for fatal error messages
	LevelFatal
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Logger is the interface for logging.
// args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
	WithModule(module string) Logger
}

// SimpleLogger writes one line per message:
//
//	2025/01/02 15:04:05 [session] WARN: token refresh failed error=...
type SimpleLogger struct {
	module    string
	level     *levelVar
	logger    *log.Logger
	useColors bool
}

// levelVar is shared by a logger and every WithModule child, so SetLevel
// on the root applies everywhere.
type levelVar struct {
	mu    sync.RWMutex
	level Level
}

func (v *levelVar) get() Level {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.level
}

func (v *levelVar) set(l Level) {
	v.mu.Lock()
	v.level = l
	v.mu.Unlock()
}

// NewSimpleLogger creates a logger writing to stderr. Stdout is reserved for
// command output.
func NewSimpleLogger(module string, level Level, useColors bool) *SimpleLogger {
	return NewSimpleLoggerWithWriter(module, level, useColors && isTerminal(os.Stderr), os.Stderr)
}

// NewSimpleLoggerWithWriter creates a logger writing to w.
func NewSimpleLoggerWithWriter(module string, level Level, useColors bool, w io.Writer) *SimpleLogger {
	return &SimpleLogger{
		module:    module,
		level:     &levelVar{level: level},
		logger:    log.New(w, "", log.LstdFlags),
		useColors: useColors,
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// SetLevel changes the minimum level for this logger and all loggers derived from it.
func (l *SimpleLogger) SetLevel(level Level) {
	l.level.set(level)
}

func (l *SimpleLogger) formatMessage(level Level, msg string, args ...interface{}) string {
	message := msg
	if len(args) > 0 {
		var pairs []string
		for i := 0; i+1 < len(args); i += 2 {
			pairs = append(pairs, fmt.Sprintf("%v=%v", args[i], args[i+1]))
		}
		if len(pairs) > 0 {
			message = msg + " " + strings.Join(pairs, " ")
		}
	}

	modulePart := "[" + l.module + "]"
	levelPart := level.String()
	if l.useColors {
		modulePart = colorCyan + modulePart + colorReset
		levelPart = colorizeLevel(level, levelPart)
	}

	return fmt.Sprintf("%s %s: %s", modulePart, levelPart, message)
}

func colorizeLevel(level Level, text string) string {
	switch level {
	case LevelDebug:
		return colorGray + text + colorReset
	case LevelInfo:
		return colorGreen + text + colorReset
	case LevelWarn:
		return colorYellow + text + colorReset
	case LevelError:
		return colorRed + text + colorReset
	case LevelFatal:
		return colorRed + colorBold + text + colorReset
	default:
		return text
	}
}

func (l *SimpleLogger) log(level Level, msg string, args ...interface{}) {
	if level < l.level.get() {
		return
	}

	l.logger.Println(l.formatMessage(level, msg, args...))

	if level == LevelFatal {
		os.Exit(1)
	}
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message
func (l *SimpleLogger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

// Fatal logs a fatal error message and exits
func (l *SimpleLogger) Fatal(msg string, args ...interface{}) {
	l.log(LevelFatal, msg, args...)
}

// WithModule returns a logger for a sub-component: "cli" + "session" logs as
// [cli/session].
func (l *SimpleLogger) WithModule(module string) Logger {
	name := module
	if l.module != "" {
		name = l.module + "/" + module
	}
	return &SimpleLogger{
		module:    name,
		level:     l.level,
		logger:    l.logger,
		useColors: l.useColors,
	}
}

// Color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)
