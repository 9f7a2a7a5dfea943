package log

import "sync"

// The TUI owns the terminal, so all logging funnels through one file-backed
// logger installed at startup.  The package-level functions below delegate to
// it and silently drop messages until it is installed, which keeps early
// startup code free of nil checks.

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// SetDefaultLogger installs the logger used by the package-level functions
func SetDefaultLogger(logger *Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// DefaultLogger returns the installed logger, or nil before startup wiring
func DefaultLogger() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Debug logs at debug level with the default logger
func Debug(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs at info level with the default logger
func Info(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs at warn level with the default logger
func Warn(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs at error level with the default logger
func Error(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Error(msg, args...)
	}
}

// Trace logs at debug level with a TRACE prefix.  There is no real trace
// level in slog; this only fires when trace logging was enabled in config.
func Trace(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil && logger.traceEnabled {
		logger.Debug("TRACE: "+msg, args...)
	}
}
