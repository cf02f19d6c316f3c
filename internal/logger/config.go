package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// environmentPresets are the level, format and source reporting each
// environment starts from. Unknown environments use the dev preset.
var environmentPresets = map[string]Config{
	EnvironmentDev:        {Level: LogLevelDebug, Format: LogFormatPretty, AddSource: true},
	EnvironmentTest:       {Level: LogLevelDebug, Format: LogFormatText, AddSource: true},
	EnvironmentStaging:    {Level: LogLevelInfo, Format: LogFormatJSON},
	EnvironmentProduction: {Level: LogLevelInfo, Format: LogFormatJSON},
}

// ForEnvironment returns the preset for env with the default service name
func ForEnvironment(env string) Config {
	env = strings.ToLower(strings.TrimSpace(env))
	cfg, ok := environmentPresets[env]
	if !ok {
		env = EnvironmentDev
		cfg = environmentPresets[env]
	}
	cfg.Environment = env
	cfg.ServiceName = DefaultServiceName
	cfg.Version = DefaultVersion
	return cfg
}

// NewConfig starts from the environment preset and applies whichever of
// level and format the caller set
func NewConfig(level, format, serviceName, version, environment string) Config {
	cfg := ForEnvironment(environment)
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}
	if version != "" {
		cfg.Version = version
	}
	return cfg
}

// ParseLevel maps a level name to slog. ok is false for unknown names.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LogLevelDebug:
		return slog.LevelDebug, true
	case LogLevelInfo:
		return slog.LevelInfo, true
	case LogLevelWarn, "warning":
		return slog.LevelWarn, true
	case LogLevelError:
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// LogLevel is the configured level, info when unset or unknown
func (c Config) LogLevel() slog.Level {
	level, _ := ParseLevel(c.Level)
	return level
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) IsPretty() bool {
	return strings.EqualFold(c.Format, LogFormatPretty)
}

// BaseAttributes are attached to every record; empty values are skipped
func (c Config) BaseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
