package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the logging severity threshold.
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

var (
	mu       sync.RWMutex
	level    = InfoLevel
	std      = log.New(os.Stderr, "", log.LstdFlags)
	names    = map[Level]string{TraceLevel: "TRACE", DebugLevel: "DEBUG", InfoLevel: "INFO", WarnLevel: "WARN", ErrorLevel: "ERROR"}
)

// ParseLevel converts a level name into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}
}

// SetLevel sets the minimum level that gets written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects log output, e.g. to a file from config.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

func write(l Level, format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	std.Printf("["+names[l]+"] "+format, v...)
}

func Trace(format string, v ...any) { write(TraceLevel, format, v...) }
func Debug(format string, v ...any) { write(DebugLevel, format, v...) }
func Info(format string, v ...any)  { write(InfoLevel, format, v...) }
func Warn(format string, v ...any)  { write(WarnLevel, format, v...) }
func Error(format string, v ...any) { write(ErrorLevel, format, v...) }
