package logx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Formatter renders a single log record
type Formatter interface {
	Format(rec *Record) ([]byte, error)
}

// Record is one log line before formatting
type Record struct {
	Level     Level
	Message   string
	Fields    Fields
	Data      any
	Error     error
	Timestamp time.Time
	Caller    string
}

// Fields is a map of structured data
type Fields map[string]any

const (
	colorReset      = "\033[0m"
	colorRed        = "\033[31m"
	colorCyan       = "\033[36m"
	colorGray       = "\033[90m"
	colorWhite      = "\033[97m"
	colorBoldRed    = "\033[1;31m"
	colorBoldYellow = "\033[1;33m"
	colorBoldCyan   = "\033[1;36m"
	colorBoldGreen  = "\033[1;32m"
)

var levelColors = map[Level]string{
	LevelTrace: colorGray,
	LevelDebug: colorBoldCyan,
	LevelInfo:  colorBoldGreen,
	LevelWarn:  colorBoldYellow,
	LevelError: colorBoldRed,
	LevelFatal: colorBoldRed,
}

// ConsoleFormatter writes human-readable, optionally colored lines
type ConsoleFormatter struct {
	config *Config
}

func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

func (f *ConsoleFormatter) paint(b *strings.Builder, color, s string) {
	if f.config.EnableColors && color != "" {
		b.WriteString(color)
		b.WriteString(s)
		b.WriteString(colorReset)
		return
	}
	b.WriteString(s)
}

func (f *ConsoleFormatter) Format(rec *Record) ([]byte, error) {
	var b strings.Builder

	if f.config.EnableTimestamp {
		f.paint(&b, colorGray, formatTimestamp(rec.Timestamp, f.config.TimeFormat))
		b.WriteByte(' ')
	}

	f.paint(&b, levelColors[rec.Level], fmt.Sprintf("[%-5s]", rec.Level.String()))
	b.WriteByte(' ')

	if f.config.EnableCaller && rec.Caller != "" {
		f.paint(&b, colorGray, "["+rec.Caller+"]")
		b.WriteByte(' ')
	}

	f.paint(&b, colorWhite, rec.Message)

	if len(rec.Fields) > 0 {
		keys := make([]string, 0, len(rec.Fields))
		for k := range rec.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, rec.Fields[k]))
		}
		b.WriteByte(' ')
		f.paint(&b, colorCyan, strings.Join(pairs, " "))
	}

	if rec.Error != nil {
		b.WriteByte('\n')
		if f.config.EnableColors {
			f.paint(&b, colorRed, "  ╰─→ error: "+rec.Error.Error())
		} else {
			b.WriteString("  error: " + rec.Error.Error())
		}
	}

	b.WriteByte('\n')
	if rec.Data != nil {
		for _, line := range strings.Split(prettyJSON(rec.Data), "\n") {
			f.paint(&b, colorGray, "  "+line)
			b.WriteByte('\n')
		}
	}

	return []byte(b.String()), nil
}

// JSONFormatter writes one JSON object per line
type JSONFormatter struct {
	config *Config
}

func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

func (f *JSONFormatter) Format(rec *Record) ([]byte, error) {
	out := map[string]any{
		"level":   rec.Level.String(),
		"message": rec.Message,
	}

	if f.config.EnableTimestamp {
		switch f.config.TimeFormat {
		case "unix":
			out["timestamp"] = rec.Timestamp.Unix()
		case "unixmilli":
			out["timestamp"] = rec.Timestamp.UnixMilli()
		default:
			out["timestamp"] = rec.Timestamp.Format(time.RFC3339Nano)
		}
	}

	return marshalLine(f.config, rec, out, "")
}

// CloudWatchFormatter writes JSON using the msg/time keys CloudWatch Insights expects
type CloudWatchFormatter struct {
	config *Config
}

func NewCloudWatchFormatter(config *Config) *CloudWatchFormatter {
	return &CloudWatchFormatter{config: config}
}

func (f *CloudWatchFormatter) Format(rec *Record) ([]byte, error) {
	out := map[string]any{
		"level": rec.Level.String(),
		"msg":   rec.Message,
		"time":  rec.Timestamp.Format(time.RFC3339Nano),
	}
	return marshalLine(f.config, rec, out, "error")
}

func marshalLine(cfg *Config, rec *Record, out map[string]any, errorType string) ([]byte, error) {
	if cfg.EnableCaller && rec.Caller != "" {
		out["caller"] = rec.Caller
	}
	for k, v := range rec.Fields {
		out[k] = v
	}
	if rec.Error != nil {
		out["error"] = rec.Error.Error()
		if errorType != "" {
			out["error_type"] = errorType
		}
	}
	if rec.Data != nil {
		out["data"] = rec.Data
	}

	line, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}

func formatTimestamp(t time.Time, format string) string {
	switch format {
	case "unix":
		return fmt.Sprintf("%d", t.Unix())
	case "unixmilli":
		return fmt.Sprintf("%d", t.UnixMilli())
	default:
		return t.Format(format)
	}
}

func prettyJSON(data any) string {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}
	return string(raw)
}
