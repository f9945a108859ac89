package logx

import (
	"io"
	"os"
	"strings"
	"time"
)

// Format is the output format
type Format string

const (
	FormatConsole    Format = "console"
	FormatJSON       Format = "json"
	FormatCloudWatch Format = "cloudwatch"
)

// Config holds the logger configuration
type Config struct {
	Level           Level
	Format          Format
	EnableColors    bool
	EnableCaller    bool
	EnableTimestamp bool

	// TimeFormat is a layout or one of "unix", "unixmilli"
	TimeFormat string

	Output io.Writer
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Level:           LevelInfo,
		Format:          FormatConsole,
		EnableColors:    true,
		EnableTimestamp: true,
		TimeFormat:      time.RFC3339,
		Output:          os.Stdout,
	}
}

// LoadFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_COLOR, LOG_CALLER and
// LOG_TIME_FORMAT on top of the defaults.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}

	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		cfg.Format = FormatJSON
	case "cloudwatch":
		cfg.Format = FormatCloudWatch
	case "console":
		cfg.Format = FormatConsole
	}

	if v := os.Getenv("LOG_COLOR"); v != "" {
		cfg.EnableColors = truthy(v)
	}
	if v := os.Getenv("LOG_CALLER"); v != "" {
		cfg.EnableCaller = truthy(v)
	}

	if tf := os.Getenv("LOG_TIME_FORMAT"); tf != "" {
		switch strings.ToUpper(tf) {
		case "RFC3339":
			cfg.TimeFormat = time.RFC3339
		case "RFC3339NANO":
			cfg.TimeFormat = time.RFC3339Nano
		case "RFC822":
			cfg.TimeFormat = time.RFC822
		case "UNIX":
			cfg.TimeFormat = "unix"
		case "UNIXMILLI":
			cfg.TimeFormat = "unixmilli"
		default:
			cfg.TimeFormat = tf
		}
	}

	return cfg
}

func truthy(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}
