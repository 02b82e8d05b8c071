// Package logging is the process-wide text logger.
//
// The TUI owns stdout and stderr, so logs go to a rotated file under the data
// directory. Until Init is called every helper is a no-op.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the global logger instance. Nil until Init.
	Logger *log.Logger

	sink io.Closer
)

// Options control where and how much is logged.
type Options struct {
	Dir        string // log directory; created if missing
	Level      string // debug, info, warn, error
	MaxSizeMB  int
	MaxBackups int
}

// Init opens movierec.log in opts.Dir and installs the global Logger.
func Init(opts Options) error {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, "movierec.log"),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	}

	InitWriter(rotator, opts.Level)
	sink = rotator
	return nil
}

// InitWriter installs a global Logger writing to w. Used by tests and by
// commands that log to stderr.
func InitWriter(w io.Writer, level string) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(level),
	})
}

// ParseLevel maps a level name to a log.Level. Unknown names mean info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Close flushes and closes the log file.
func Close() {
	if sink != nil {
		sink.Close()
		sink = nil
	}
}

// Info logs at info level.
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Debug logs at debug level.
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Warn logs at warn level.
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs at error level.
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// WithPrefix returns a prefixed child of the global Logger, or nil before Init.
func WithPrefix(prefix string) *log.Logger {
	if Logger != nil {
		return Logger.WithPrefix(prefix)
	}
	return nil
}
