// Package logger builds the zerolog logger shared by the HTTP layer and GORM.
package logger

import (
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a logger writing to stdout. pretty switches to the
// human-readable console writer for local use.
func New(level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, pretty)
}

func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Gorm adapts l for gorm.Config.Logger. SQL traces only show at debug.
func Gorm(l zerolog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if l.GetLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}

	return gormlogger.New(
		stdlog.New(l.With().Str("component", "gorm").Logger(), "", 0),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
