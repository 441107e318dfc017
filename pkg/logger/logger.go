// Package logger is the structured logging layer of the service, backed by
// zerolog. Use cases and infrastructure receive a *Logger instead of touching
// zerolog directly so every event carries the same shape and service tag.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls output format and verbosity.
type Config struct {
	Env     string // "development" renders a human-readable console; anything else emits JSON
	Level   string // trace, debug, info, warn, error; unknown values fall back to info
	Service string // optional tag stamped on every event
}

// Logger wraps zerolog for injection and consistency.
type Logger struct {
	zl zerolog.Logger
}

// New builds the process logger. It also replaces zerolog's package-level
// logger so libraries that log through it share the same output.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}
	l := newWithWriter(cfg, w)
	log.Logger = l.zl
	return l
}

// Nop returns a logger that discards every event. Meant for tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func newWithWriter(cfg Config, w io.Writer) *Logger {
	ctx := zerolog.New(w).Level(levelOrInfo(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	return &Logger{zl: ctx.Logger()}
}

func levelOrInfo(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component returns a sublogger tagged with the subsystem emitting the events.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
