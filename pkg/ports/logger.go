// Package ports defines interfaces for external dependencies.
package ports

import "strings"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for per-frame and per-gesture details from components.
	LevelDebug LogLevel = iota
	// LevelInfo is for orchestration progress.
	LevelInfo
	// LevelWarn is for recoverable problems such as a skipped gesture.
	LevelWarn
	// LevelError is for problems that abort a run.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name, case-insensitively.
// Unknown names map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i)
		}
	}
	return LevelInfo
}

// Logger abstracts logging with translatable message keys.
type Logger interface {
	// Debug logs component-level processing details.
	// msg is a message key that may be translated; args are format arguments.
	Debug(msg string, args ...any)

	// Info logs orchestration-level progress.
	Info(msg string, args ...any)

	// Warn logs a recoverable problem.
	Warn(msg string, args ...any)

	// Error logs a problem that stops processing.
	Error(msg string, args ...any)

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
