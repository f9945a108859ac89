package logx

import "strings"

// Level represents logging level
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	// LevelOff disables all logging
	LevelOff
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelOff:   "OFF",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a level name, defaulting to INFO
func ParseLevel(level string) Level {
	up := strings.ToUpper(strings.TrimSpace(level))
	if up == "WARNING" {
		return LevelWarn
	}
	for l, name := range levelNames {
		if name == up {
			return l
		}
	}
	return LevelInfo
}

// Enabled reports whether target is logged when l is the minimum level
func (l Level) Enabled(target Level) bool {
	return l <= target
}
