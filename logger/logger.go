// Package logger is a small leveled logger shared by all commands.
// The level is set once from configuration; there is no package-level
// debug toggle beyond it.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu    sync.Mutex
	level = LevelInfo

	debugLog = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
	infoLog  = log.New(os.Stderr, "[INFO] ", log.LstdFlags)
	warnLog  = log.New(os.Stderr, "[WARN] ", log.LstdFlags)
	errorLog = log.New(os.Stderr, "[ERROR] ", log.LstdFlags)
)

// SetLevel selects the minimum level by name. Unknown names fall back
// to "info".
func SetLevel(name string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(name) {
	case "debug":
		level = LevelDebug
	case "info":
		level = LevelInfo
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	default:
		level = LevelInfo
	}
}

// SetOutput redirects all levels to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	debugLog.SetOutput(w)
	infoLog.SetOutput(w)
	warnLog.SetOutput(w)
	errorLog.SetOutput(w)
}

func Debug(format string, v ...interface{}) {
	if level <= LevelDebug {
		_ = debugLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Info(format string, v ...interface{}) {
	if level <= LevelInfo {
		_ = infoLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if level <= LevelWarn {
		_ = warnLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Error(format string, v ...interface{}) {
	if level <= LevelError {
		_ = errorLog.Output(2, fmt.Sprintf(format, v...))
	}
}
