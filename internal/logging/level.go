package logging

import (
	"log/slog"
	"strings"
)

// DefaultLevel is the log level used when not configured.
const DefaultLevel = slog.LevelInfo

// levels maps accepted names to slog levels; "warning" is an alias.
var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LevelNames lists the canonical level names in increasing severity.
func LevelNames() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ParseLevel converts a level name to slog.Level, ignoring case and
// surrounding whitespace. It returns (DefaultLevel, false) for an unknown name.
func ParseLevel(s string) (slog.Level, bool) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return DefaultLevel, false
	}
	return level, true
}
