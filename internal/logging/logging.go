// internal/logging/logging.go
//
// Global zerolog setup: level from config, console output, and an optional
// rotating JSON file (lumberjack) written alongside the console.

package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Setup.
type Options struct {
	Level      string
	File       string // empty disables the file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Console    io.Writer // defaults to os.Stderr
}

// Setup configures the global logger and returns the file sink (if any) so
// the caller can close it on shutdown.
func Setup(opts Options) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	console := opts.Console
	if console == nil {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	var closer io.Closer
	out := console
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		closer = lj
		out = zerolog.MultiLevelWriter(console, lj)
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, err
}
