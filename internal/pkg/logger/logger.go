// Package logger owns the process-wide zerolog instance. Packages that
// receive a zerolog.Logger through their constructor should use that one;
// the helpers here are for startup code that runs before wiring.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var base zerolog.Logger

// LogLevel is the level name as written in config.yaml
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

var zerologLevels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

// Config selects the level and the output format.
// Pretty switches from JSON lines to zerolog's console writer.
type Config struct {
	Level  LogLevel
	Pretty bool
	Output io.Writer // os.Stdout when nil
}

// ParseLevel normalizes a configured level name. Unknown names mean info.
func ParseLevel(level string) LogLevel {
	l := LogLevel(strings.ToLower(strings.TrimSpace(level)))
	if _, ok := zerologLevels[l]; ok {
		return l
	}
	return InfoLevel
}

// Configure replaces the package logger and zerolog's global one.
func Configure(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, ok := zerologLevels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	base = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = base
}

// Get returns a copy of the configured logger for constructor injection.
func Get() zerolog.Logger { return base }

func Debug() *zerolog.Event { return base.Debug() }
func Info() *zerolog.Event  { return base.Info() }
func Warn() *zerolog.Event  { return base.Warn() }
func Error() *zerolog.Event { return base.Error() }

// Fatal exits the process once the event is sent.
func Fatal() *zerolog.Event { return base.Fatal() }

// WithField returns a child logger carrying one extra field.
func WithField(key string, value interface{}) zerolog.Logger {
	return base.With().Interface(key, value).Logger()
}

// WithFields returns a child logger carrying every entry of fields.
func WithFields(fields map[string]interface{}) zerolog.Logger {
	return base.With().Fields(fields).Logger()
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
