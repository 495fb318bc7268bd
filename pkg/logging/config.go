package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
)

// Config describes how a logger is built.
type Config struct {
	Level      string // trace, debug, info, warn, error, off
	Format     string // auto, json or console
	Output     string // stderr, stdout, discard or a file path
	TimeFormat string // console timestamps: kitchen, rfc3339, stamp or a layout
	NoColor    bool
	AddCaller  bool
	Fields     map[string]string // attached to every entry
}

// DefaultConfig logs info and above to stderr, as console output on a
// terminal and JSON otherwise.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     map[string]string{},
	}
}

// ConfigFromEnv reads BOOKSHELF_LOG_* (or bare LOG_*) variables over the
// defaults. DEBUG lowers the level to debug unless a level is set.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	overrides := []struct {
		name string
		dst  *string
	}{
		{"LEVEL", &cfg.Level},
		{"FORMAT", &cfg.Format},
		{"OUTPUT", &cfg.Output},
		{"TIME_FORMAT", &cfg.TimeFormat},
	}
	for _, o := range overrides {
		if v := envFirst("BOOKSHELF_LOG_"+o.name, "LOG_"+o.name); v != "" {
			*o.dst = v
		}
	}
	if envFirst("BOOKSHELF_LOG_LEVEL", "LOG_LEVEL") == "" && os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	cfg.AddCaller = envFirst("BOOKSHELF_LOG_CALLER", "LOG_CALLER") == "true"
	cfg.Fields = parseFields(envFirst("BOOKSHELF_LOG_FIELDS", "LOG_FIELDS"))
	return cfg
}

// NewLoggerFromConfig builds a logger from cfg and sets the global level
// to match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	with := zerolog.New(getWriter(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		with = with.Caller()
	}
	for k, v := range cfg.Fields {
		with = with.Str(k, v)
	}
	return with.Logger()
}

func getWriter(cfg *Config) io.Writer {
	out := openOutput(cfg.Output)

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" && format != "text" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// openOutput falls back to stderr when a log file cannot be opened.
func openOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

// parseLevel maps a level name to zerolog, defaulting to info.
func parseLevel(name string) zerolog.Level {
	name = strings.ToLower(name)
	switch name {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

var namedTimeFormats = map[string]string{
	"":            time.Kitchen,
	"kitchen":     time.Kitchen,
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"stamp":       time.Stamp,
}

// parseTimeFormat accepts a named format or a Go layout.
func parseTimeFormat(format string) string {
	if layout, ok := namedTimeFormats[strings.ToLower(format)]; ok {
		return layout
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}

// parseFields reads comma-separated key=value pairs, skipping malformed ones.
func parseFields(s string) map[string]string {
	fields := map[string]string{}
	if s == "" {
		return fields
	}
	for _, pair := range strings.Split(s, ",") {
		if k, v, ok := strings.Cut(pair, "="); ok {
			fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return fields
}
